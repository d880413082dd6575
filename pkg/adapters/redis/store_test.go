package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/varion/pkg/script"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return NewFromClient(client, opts...), mr
}

func TestStoreSaveLoadDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	state := script.NewState("s1", "start")
	state.History = append(state.History, "middle")
	state.Vars["gold"] = "plenty"
	require.NoError(t, store.Save(ctx, "s1", state))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "start", loaded.CurrentNodeID)
	assert.Equal(t, []string{"start", "middle"}, loaded.History)
	assert.Equal(t, "plenty", loaded.Vars["gold"])

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, script.ErrSessionNotFound)
}

func TestStoreMissingSession(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, script.ErrSessionNotFound)
}

func TestStoreKeyPrefix(t *testing.T) {
	store, mr := newTestStore(t, WithPrefix("stories:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", script.NewState("s1", "start")))
	assert.True(t, mr.Exists("stories:s1"))
}

func TestStoreTTL(t *testing.T) {
	store, mr := newTestStore(t, WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", script.NewState("s1", "start")))
	assert.Greater(t, mr.TTL("varion:session:s1"), time.Duration(0))

	// Past the TTL the session is gone.
	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, script.ErrSessionNotFound)
}

func TestStoreList(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", script.NewState("a", "start")))
	require.NoError(t, store.Save(ctx, "b", script.NewState("b", "start")))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, sessions)
}

func TestStorePing(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
