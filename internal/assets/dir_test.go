package assets

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStore_PutAndGet(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "avatars/ana.png", pngBytes, "image/png"))

	obj, err := store.Get(ctx, "avatars/ana.png")
	require.NoError(t, err)
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, int64(len(pngBytes)), obj.ContentLength)
}

func TestDirStore_Missing(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "avatars/nobody.png")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(context.Background(), "avatars")
	assert.Error(t, err)
}

func TestDirStore_RejectsEscapingKeys(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../secret", "avatars/../../etc/passwd"} {
		assert.ErrorIs(t, store.Put(ctx, key, []byte("x"), "text/plain"), ErrInvalidKey, key)
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}
