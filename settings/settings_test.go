package settings

import (
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/truemediaorg/postgrab/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file yields defaults", func(t *testing.T) {
		store := NewFileStore(t.TempDir())
		s, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultSettings(), s)
	})

	t.Run("round trips the whole blob", func(t *testing.T) {
		store := NewFileStore(t.TempDir() + "/nested")
		saved := model.Settings{Endpoint: "http://nas.local:5556", Token: "abc", Language: "en"}
		require.NoError(t, store.Save(ctx, saved))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, saved, loaded)
	})

	t.Run("saving rewrites instead of patching", func(t *testing.T) {
		store := NewFileStore(t.TempDir())
		require.NoError(t, store.Save(ctx, model.Settings{Endpoint: "http://a", Token: "abc", Language: "en"}))
		require.NoError(t, store.Save(ctx, model.Settings{Endpoint: "http://b", Language: "zh"}))

		blob, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		assert.JSONEq(t, `{"apiBaseUrl": "http://b", "language": "zh"}`, string(blob))
	})

	t.Run("corrupt blob falls back to defaults", func(t *testing.T) {
		store := NewFileStore(t.TempDir())
		require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0600))

		s, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultSettings(), s)
	})

	t.Run("blob in the original format is understood", func(t *testing.T) {
		store := NewFileStore(t.TempDir())
		require.NoError(t, os.WriteFile(store.Path(), []byte(`{"apiBaseUrl":"demo","language":"en"}`), 0600))

		s, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.Settings{Endpoint: "demo", Language: "en"}, s)
	})
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(ctx, mr.Addr(), "")
	require.NoError(t, err)
	defer store.Close()

	t.Run("missing key yields defaults", func(t *testing.T) {
		s, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultSettings(), s)
	})

	t.Run("stores one blob under the fixed key", func(t *testing.T) {
		saved := model.Settings{Endpoint: "http://nas.local:5556", Language: "en"}
		require.NoError(t, store.Save(ctx, saved))

		raw, err := mr.Get(StorageKey)
		require.NoError(t, err)
		assert.JSONEq(t, `{"apiBaseUrl": "http://nas.local:5556", "language": "en"}`, raw)

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, saved, loaded)
	})

	t.Run("corrupt blob falls back to defaults", func(t *testing.T) {
		require.NoError(t, mr.Set(StorageKey, "nope"))
		s, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultSettings(), s)
	})
}

func TestOpen(t *testing.T) {
	t.Run("file store without redis", func(t *testing.T) {
		store, err := Open(context.Background(), t.TempDir(), "", "")
		require.NoError(t, err)
		assert.IsType(t, &FileStore{}, store)
	})

	t.Run("redis store when an address is given", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, err := Open(context.Background(), t.TempDir(), mr.Addr(), "")
		require.NoError(t, err)
		assert.IsType(t, &RedisStore{}, store)
	})

	t.Run("unreachable redis is an error", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := Open(context.Background(), t.TempDir(), addr, "")
		assert.Error(t, err)
	})
}
