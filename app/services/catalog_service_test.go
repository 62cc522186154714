package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/validate"
)

func TestCatalogService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(newStore().Products)

	p, err := svc.Add(ctx, models.Product{Name: " Apple ", PriceSEK: dec("12.99"), Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, "Apple", p.Name)
	assertDecimal(t, "1.21", p.PriceEUR)
	assertDecimal(t, "1.30", p.PriceCHF)

	_, err = svc.Add(ctx, models.Product{Name: "apple", PriceSEK: dec("1")})
	assert.True(t, errors.Is(err, ErrProductExists), "got %v", err)

	_, err = svc.Update(ctx, models.Product{Name: "Apple", PriceSEK: dec("10"), Quantity: 4})
	require.NoError(t, err)

	found, err := svc.Find(ctx, "APPLE")
	require.NoError(t, err)
	assertDecimal(t, "10", found.PriceSEK)
	assertDecimal(t, "0.93", found.PriceEUR)
	assertDecimal(t, "1.00", found.PriceCHF)
	assert.Equal(t, 4, found.Quantity)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "apple"))
	_, err = svc.Find(ctx, "Apple")
	assert.True(t, errors.Is(err, ErrProductNotFound), "got %v", err)

	err = svc.Delete(ctx, "Apple")
	assert.True(t, errors.Is(err, ErrProductNotFound), "got %v", err)

	_, err = svc.Update(ctx, models.Product{Name: "Apple", PriceSEK: dec("1")})
	assert.True(t, errors.Is(err, ErrProductNotFound), "got %v", err)
}

func TestCatalogService_AddValidates(t *testing.T) {
	svc := NewCatalogService(newStore().Products)

	_, err := svc.Add(context.Background(), models.Product{Name: "", PriceSEK: dec("0"), Quantity: -1})
	var verrs validate.Errors
	require.True(t, errors.As(err, &verrs), "got %v", err)
	assert.Contains(t, verrs, "name")
	assert.Contains(t, verrs, "price")
	assert.Contains(t, verrs, "quantity")
}
