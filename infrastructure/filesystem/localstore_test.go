package filesystem

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Write(ctx, "ABC-123", strings.NewReader("hello")))

	var out bytes.Buffer
	require.NoError(t, store.Read(ctx, "ABC-123", &out))
	assert.Equal(t, "hello", out.String())

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC-123"}, keys)

	require.NoError(t, store.Delete(ctx, "ABC-123"))
	assert.Error(t, store.Read(ctx, "ABC-123", &out))
}

func TestLocalStoreRejectsPathKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, store.Write(ctx, key, strings.NewReader("x")), key)
	}
}

func TestLocalStoreDeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "MISSING"))
}
