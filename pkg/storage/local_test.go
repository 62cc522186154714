package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDisk_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	disk, err := NewLocalDisk(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, disk.Put(ctx, "carts/Sara.csv", []byte("Apple,12.99,1.21,1.30,2\n")))

	ok, err := disk.Exists(ctx, "carts/Sara.csv")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := disk.Get(ctx, "carts/Sara.csv")
	require.NoError(t, err)
	assert.Equal(t, "Apple,12.99,1.21,1.30,2\n", string(data))

	files, err := disk.Files(ctx, "carts")
	require.NoError(t, err)
	assert.Equal(t, []string{"carts/Sara.csv"}, files)

	require.NoError(t, disk.Delete(ctx, "carts/Sara.csv"))
	require.NoError(t, disk.Delete(ctx, "carts/Sara.csv"), "deleting twice is fine")

	_, err = disk.Get(ctx, "carts/Sara.csv")
	assert.True(t, errors.Is(err, ErrNotExist))
}

func TestLocalDisk_PathsStayInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	disk, err := NewLocalDisk(root)
	require.NoError(t, err)

	require.NoError(t, disk.Put(ctx, "../../escape.txt", []byte("x")))
	ok, err := disk.Exists(ctx, "escape.txt")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalDisk_FilesOnMissingDirectory(t *testing.T) {
	disk, err := NewLocalDisk(t.TempDir())
	require.NoError(t, err)

	files, err := disk.Files(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "ftp"})
	assert.Error(t, err)
}
