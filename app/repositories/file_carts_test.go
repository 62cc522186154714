package repositories

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/storage"
)

func newFileCarts(t *testing.T) (*FileCarts, storage.Disk) {
	t.Helper()
	disk, err := storage.NewLocalDisk(t.TempDir())
	require.NoError(t, err)
	return NewFileCarts(disk), disk
}

func TestFileCarts(t *testing.T) {
	repo, _ := newFileCarts(t)
	testCarts(t, repo)
}

func TestFileCarts_WritesSnapshotFormat(t *testing.T) {
	ctx := context.Background()
	repo, disk := newFileCarts(t)

	require.NoError(t, repo.Insert(ctx, models.CartItem{CustomerName: "Sara", ProductName: "Apple", Quantity: 2, Price: dec("12.99")}))

	data, err := disk.Get(ctx, SnapshotPath("Sara"))
	require.NoError(t, err)
	assert.Equal(t, "Apple,12.99,1.21,1.30,2\n", string(data))
}

func TestDecodeSnapshot_SkipsMalformedLines(t *testing.T) {
	data := []byte(`Apple,12.99,1.21,1.30,2
broken line
Milk,abc,1,1,1
Bread,24.00,2.23,2.40,0

"Oat, Milk",19.50,1.81,1.95,1
`)

	items, skipped := DecodeSnapshot("Sara", data)
	assert.Equal(t, 3, skipped)
	require.Len(t, items, 2)
	assert.Equal(t, "Apple", items[0].ProductName)
	assert.Equal(t, "Sara", items[0].CustomerName)
	assert.Equal(t, "Oat, Milk", items[1].ProductName)
	assertDecimal(t, "19.50", items[1].Price)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	in := []models.CartItem{
		{CustomerName: "Jimmy", ProductName: "Apple", Quantity: 2, Price: dec("12.99")},
		{CustomerName: "Jimmy", ProductName: "Oat, Milk", Quantity: 1, Price: dec("19.5")},
	}

	data, err := EncodeSnapshot(in)
	require.NoError(t, err)
	out, skipped := DecodeSnapshot("Jimmy", data)
	assert.Zero(t, skipped)
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].ProductName, out[i].ProductName)
		assert.Equal(t, in[i].Quantity, out[i].Quantity)
		assertDecimal(t, in[i].Price.String(), out[i].Price)
	}
}

func TestDecodeSnapshot_SkipsFreeRows(t *testing.T) {
	data := []byte("Apple,0,0,0,2\nMilk,0.00,0.00,0.00,1\nBread,24.00,2.23,2.40,1\n")

	items, skipped := DecodeSnapshot("Sara", data)
	assert.Equal(t, 2, skipped)
	require.Len(t, items, 1)
	assert.Equal(t, "Bread", items[0].ProductName)
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriteSnapshot_SurfacesWriterError(t *testing.T) {
	boom := errors.New("disk full")
	items := []models.CartItem{{ProductName: "Apple", Quantity: 1, Price: dec("12.99")}}

	err := WriteSnapshot(failingWriter{err: boom}, items)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "repositories.WriteSnapshot")

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, items))
	assert.Equal(t, "Apple,12.99,1.21,1.30,1\n", buf.String())
}

func TestSnapshotPath_EscapesName(t *testing.T) {
	assert.Equal(t, "carts/Sara.csv", SnapshotPath("Sara"))
	assert.Equal(t, "carts/a%2Fb.csv", SnapshotPath("a/b"))
}
