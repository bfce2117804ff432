package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client)
	return store, mr
}

func TestRedisStore_SaveLoadDeleteGame(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	data := &GameData{
		Code:            "ABCD",
		Started:         true,
		CurrentRound:    2,
		MaxRounds:       3,
		Categories:      []string{"Name", "Place"},
		ScoringType:     "peer",
		CurrentAlphabet: "K",
		CreatedAt:       time.Now().Unix(),
		Users: []UserData{
			{ID: "p1", Name: "Alice", AvatarIndex: 4, Scores: map[int]int{1: 15}},
		},
	}

	// Save
	err := store.SaveGame(ctx, "ABCD", data)
	assert.NoError(t, err)

	// Load
	loaded, err := store.LoadGame(ctx, "ABCD")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "ABCD", loaded.Code)
	assert.True(t, loaded.Started)
	assert.Equal(t, 2, loaded.CurrentRound)
	assert.Equal(t, "K", loaded.CurrentAlphabet)
	require.Len(t, loaded.Users, 1)
	assert.Equal(t, "Alice", loaded.Users[0].Name)
	assert.Equal(t, 15, loaded.Users[0].Scores[1])

	// Delete
	err = store.DeleteGame(ctx, "ABCD")
	assert.NoError(t, err)

	// Verify Delete
	loaded, err = store.LoadGame(ctx, "ABCD")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_SaveGame_NilSnapshot(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()

	err := store.SaveGame(context.Background(), "ABCD", nil)
	assert.NoError(t, err)

	loaded, err := store.LoadGame(context.Background(), "ABCD")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_GetAllGameCodes(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, store.SaveGame(ctx, "AAAA", &GameData{Code: "AAAA"}))
	require.NoError(t, store.SaveGame(ctx, "BBBB", &GameData{Code: "BBBB"}))

	codes, err := store.GetAllGameCodes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAAA", "BBBB"}, codes)
}

func TestRedisStore_SnapshotExpires(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, store.SaveGame(ctx, "ABCD", &GameData{Code: "ABCD"}))

	mr.FastForward(3 * time.Hour)

	loaded, err := store.LoadGame(ctx, "ABCD")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}
