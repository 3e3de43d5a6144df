package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/user-importer/internal/domain/user"
)

func setupStore(t *testing.T) (*ImportStateStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewImportStateStore(client), mr
}

func TestStateStoreRoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	state := domain.WorkingState{
		ImportID:      "import-1",
		FilePath:      "/uploads/users.csv",
		FileName:      "users.csv",
		Format:        "csv",
		TotalRows:     300,
		ProcessedRows: 100,
		SkippedRows:   2,
		NextOffset:    100,
		ByteOffset:    4096,
	}
	require.NoError(t, store.Put(ctx, state, time.Hour))

	got, err := store.Get(ctx, "import-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, state, *got)
}

func TestStateStoreGetAbsent(t *testing.T) {
	store, _ := setupStore(t)

	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStateStoreDelete(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, domain.WorkingState{ImportID: "import-1"}, time.Hour))
	require.NoError(t, store.Delete(ctx, "import-1"))

	got, err := store.Get(ctx, "import-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStateStoreExpiry(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, domain.WorkingState{ImportID: "import-1"}, time.Minute))

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "import-1")
	require.NoError(t, err)
	assert.Nil(t, got, "state should expire with its TTL")
}

func TestStateStoreLock(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	ok, err := store.Lock(ctx, "import-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Lock(ctx, "import-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second lock must be rejected while held")

	// A different import is unaffected.
	ok, err = store.Lock(ctx, "import-2", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Unlock(ctx, "import-1"))
	ok, err = store.Lock(ctx, "import-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// A crashed holder's lock falls away with its TTL.
	mr.FastForward(2 * time.Minute)
	ok, err = store.Lock(ctx, "import-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
