package repositories

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/currency"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
)

// EncodeSnapshot renders items in the cart snapshot format, one line per row:
//
//	name,priceSEK,priceEUR,priceCHF,quantity
//
// Prices carry two decimals and a dot separator.
func EncodeSnapshot(items []models.CartItem) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSnapshot streams items to dst in the format EncodeSnapshot produces.
func WriteSnapshot(dst io.Writer, items []models.CartItem) error {
	const op = "repositories.WriteSnapshot"

	w := csv.NewWriter(dst)
	for _, it := range items {
		eur, chf := currency.Derive(it.Price)
		err := w.Write([]string{
			it.ProductName,
			it.Price.StringFixed(2),
			eur.StringFixed(2),
			chf.StringFixed(2),
			strconv.Itoa(it.Quantity),
		})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DecodeSnapshot parses a snapshot into rows owned by customer. Lines that
// do not have five fields, a positive quantity and a positive base price are
// skipped and counted.
func DecodeSnapshot(customer string, data []byte) (items []models.CartItem, skipped int) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		rec, err := csv.NewReader(strings.NewReader(line)).Read()
		if err != nil || len(rec) != 5 || strings.TrimSpace(rec[0]) == "" {
			skipped++
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[1]))
		if err != nil || !price.IsPositive() {
			skipped++
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(rec[4]))
		if err != nil || qty < 1 {
			skipped++
			continue
		}

		items = append(items, models.CartItem{
			CustomerName: customer,
			ProductName:  strings.TrimSpace(rec[0]),
			Quantity:     qty,
			Price:        price,
		})
	}
	return items, skipped
}
