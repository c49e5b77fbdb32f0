package middleware_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/conduit/pkg/adapters/memory"
	"github.com/aretw0/conduit/pkg/persistence/middleware"
)

func key(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func TestEncryption_RoundTrip(t *testing.T) {
	backing := memory.NewStore()
	store := middleware.Chain(backing, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	}))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", map[string]any{"email": "a@b.c", "count": float64(2)}))

	data, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", data["email"])
	assert.Equal(t, float64(2), data["count"])
}

func TestEncryption_BackingStoreSeesOnlyTheEnvelope(t *testing.T) {
	backing := memory.NewStore()
	store := middleware.Chain(backing, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	}))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", map[string]any{"secret": "hunter2"}))

	raw, err := backing.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Contains(t, raw, "__encrypted__")
	assert.NotContains(t, raw, "secret")
}

func TestEncryption_KeyRotation(t *testing.T) {
	backing := memory.NewStore()
	ctx := context.Background()

	oldStore := middleware.Chain(backing, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	}))
	require.NoError(t, oldStore.Save(ctx, "s1", map[string]any{"v": "written-with-old-key"}))

	// After rotation the old key moves to the fallback list.
	newStore := middleware.Chain(backing, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    key(2),
		FallbackKeys: [][]byte{key(1)},
	}))

	data, err := newStore.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "written-with-old-key", data["v"])
}

func TestEncryption_WrongKeyFails(t *testing.T) {
	backing := memory.NewStore()
	ctx := context.Background()

	writer := middleware.Chain(backing, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	}))
	require.NoError(t, writer.Save(ctx, "s1", map[string]any{"v": "x"}))

	reader := middleware.Chain(backing, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(9),
	}))

	_, err := reader.Load(ctx, "s1")
	assert.Error(t, err)
}

func TestEncryption_PlainPayloadIsRejected(t *testing.T) {
	backing := memory.NewStore()
	ctx := context.Background()

	// Data written before encryption was enabled.
	require.NoError(t, backing.Save(ctx, "s1", map[string]any{"v": "plain"}))

	store := middleware.Chain(backing, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: key(1),
	}))

	_, err := store.Load(ctx, "s1")
	assert.Error(t, err)
}

func TestEncryption_ShortKeyPanics(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	})
}
