package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/letter-rush/internal/apperrors"
	"github.com/palemoky/letter-rush/internal/protocol"
	"github.com/palemoky/letter-rush/internal/testutil"
)

// newTestRegistry creates a registry without persistence and with a fast
// timer tick so round tests do not wait on real seconds.
func newTestRegistry() *Registry {
	rm := NewRegistry(nil, time.Hour)
	rm.tickInterval = time.Millisecond
	return rm
}

func newTestClient(id string) *testutil.SimpleClient {
	return &testutil.SimpleClient{ID: id}
}

var testCategories = []string{"Animal", "Food", "City", "Name"}

func TestCreateGame(t *testing.T) {
	rm := newTestRegistry()
	c := newTestClient("p1")

	s, err := rm.CreateGame(c, "Alice", "ABCD", 3, testCategories, "standard")
	require.NoError(t, err)

	assert.Equal(t, "ABCD", s.Code)
	assert.Equal(t, 3, s.MaxRounds)
	assert.Equal(t, SessionLobby, s.State())
	assert.Equal(t, "ABCD", c.GameCode)

	users := s.UserInfos()
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].Name)
	assert.GreaterOrEqual(t, users[0].AvatarIndex, 1)
	assert.LessOrEqual(t, users[0].AvatarIndex, 10)

	// Creator receives the initial roster broadcast
	assert.NotNil(t, c.LastMessageOfType(protocol.MsgGameData))
}

func TestCreateGameCodeInUse(t *testing.T) {
	rm := newTestRegistry()

	_, err := rm.CreateGame(newTestClient("p1"), "Alice", "ABCD", 3, testCategories, "standard")
	require.NoError(t, err)

	_, err = rm.CreateGame(newTestClient("p2"), "Bob", "ABCD", 3, testCategories, "standard")
	assert.ErrorIs(t, err, apperrors.ErrCodeInUse)
}

func TestJoinGameInvalidCode(t *testing.T) {
	rm := newTestRegistry()

	_, err := rm.JoinGame(newTestClient("p1"), "Bob", "NOPE")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCode)
}

func TestJoinGameNameTaken(t *testing.T) {
	rm := newTestRegistry()
	_, err := rm.CreateGame(newTestClient("p1"), "Alice", "ABCD", 3, testCategories, "standard")
	require.NoError(t, err)

	// Uniqueness ignores case and surrounding whitespace
	for _, name := range []string{"Alice", "alice", "  ALICE  "} {
		_, err = rm.JoinGame(newTestClient("p2"), name, "ABCD")
		assert.ErrorIs(t, err, apperrors.ErrNameTaken, "name %q", name)
	}
}

func TestJoinGameInProgress(t *testing.T) {
	rm := newTestRegistry()
	s, err := rm.CreateGame(newTestClient("p1"), "Alice", "ABCD", 3, testCategories, "standard")
	require.NoError(t, err)

	_, err = rm.StartGame("ABCD")
	require.NoError(t, err)
	defer s.cancelTimer()

	_, err = rm.JoinGame(newTestClient("p2"), "Bob", "ABCD")
	assert.ErrorIs(t, err, apperrors.ErrGameInProgress)

	// Duplicate name is reported before the in-progress check
	_, err = rm.JoinGame(newTestClient("p3"), "alice", "ABCD")
	assert.ErrorIs(t, err, apperrors.ErrNameTaken)
}

func TestJoinGameRoomFull(t *testing.T) {
	rm := newTestRegistry()
	s, err := rm.CreateGame(newTestClient("p0"), "Player0", "ABCD", 3, testCategories, "standard")
	require.NoError(t, err)

	for i := 1; i < MaxPlayers; i++ {
		_, err := rm.JoinGame(newTestClient(fmt.Sprintf("p%d", i)), fmt.Sprintf("Player%d", i), "ABCD")
		require.NoError(t, err)
	}

	_, err = rm.JoinGame(newTestClient("p10"), "Player10", "ABCD")
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)

	// A rejected join must not mutate the roster
	assert.Len(t, s.UserInfos(), MaxPlayers)
}

func TestAvatarsDistinct(t *testing.T) {
	rm := newTestRegistry()
	s, err := rm.CreateGame(newTestClient("p0"), "Player0", "ABCD", 3, testCategories, "standard")
	require.NoError(t, err)

	for i := 1; i < MaxPlayers; i++ {
		_, err := rm.JoinGame(newTestClient(fmt.Sprintf("p%d", i)), fmt.Sprintf("Player%d", i), "ABCD")
		require.NoError(t, err)
	}

	seen := make(map[int]bool)
	for _, u := range s.UserInfos() {
		assert.GreaterOrEqual(t, u.AvatarIndex, 1)
		assert.LessOrEqual(t, u.AvatarIndex, 10)
		assert.False(t, seen[u.AvatarIndex], "avatar %d assigned twice", u.AvatarIndex)
		seen[u.AvatarIndex] = true
	}
}

func TestGetSession(t *testing.T) {
	rm := newTestRegistry()
	_, err := rm.CreateGame(newTestClient("p1"), "Alice", "ABCD", 3, testCategories, "standard")
	require.NoError(t, err)

	s, err := rm.GetSession("ABCD")
	require.NoError(t, err)
	assert.Equal(t, "ABCD", s.Code)

	_, err = rm.GetSession("NOPE")
	assert.ErrorIs(t, err, apperrors.ErrGameNotFound)
}

func TestRemovePlayer(t *testing.T) {
	rm := newTestRegistry()
	c1 := newTestClient("p1")
	c2 := newTestClient("p2")

	s, err := rm.CreateGame(c1, "Alice", "ABCD", 3, testCategories, "standard")
	require.NoError(t, err)
	_, err = rm.JoinGame(c2, "Bob", "ABCD")
	require.NoError(t, err)

	gone, player := rm.RemovePlayer("p2")
	require.NotNil(t, gone)
	assert.Equal(t, "Bob", player.Name)
	assert.Empty(t, c2.GameCode)
	assert.Len(t, s.UserInfos(), 1)

	// Remaining players get the updated roster
	msg := c1.LastMessageOfType(protocol.MsgGameData)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.GameDataPayload](msg)
	require.NoError(t, err)
	assert.Len(t, payload.Users, 1)

	// Removing an unknown player is a no-op
	gone, player = rm.RemovePlayer("p2")
	assert.Nil(t, gone)
	assert.Nil(t, player)
}

func TestRemoveLastPlayerDissolvesSession(t *testing.T) {
	rm := newTestRegistry()
	_, err := rm.CreateGame(newTestClient("p1"), "Alice", "ABCD", 3, testCategories, "standard")
	require.NoError(t, err)

	_, player := rm.RemovePlayer("p1")
	require.NotNil(t, player)

	_, err = rm.GetSession("ABCD")
	assert.ErrorIs(t, err, apperrors.ErrGameNotFound)
}

func TestCleanupReapsIdleLobby(t *testing.T) {
	rm := newTestRegistry()
	rm.sessionTimeout = 0

	c := newTestClient("p1")
	_, err := rm.CreateGame(c, "Alice", "ABCD", 3, testCategories, "standard")
	require.NoError(t, err)

	rm.cleanup()

	_, err = rm.GetSession("ABCD")
	assert.ErrorIs(t, err, apperrors.ErrGameNotFound)
	assert.Empty(t, c.GameCode)
}

func TestSnapshotPersistence(t *testing.T) {
	store := &testutil.MockGameStore{}
	saved := make(chan struct{}, 8)
	deleted := make(chan struct{}, 1)
	store.On("SaveGame", mock.Anything, "ABCD", mock.Anything).
		Run(func(mock.Arguments) { saved <- struct{}{} }).Return(nil)
	store.On("DeleteGame", mock.Anything, "ABCD").
		Run(func(mock.Arguments) { deleted <- struct{}{} }).Return(nil)

	rm := NewRegistry(store, time.Hour)
	rm.tickInterval = time.Millisecond

	_, err := rm.CreateGame(newTestClient("p1"), "Alice", "ABCD", 3, testCategories, "standard")
	require.NoError(t, err)

	// Snapshots are written asynchronously
	select {
	case <-saved:
	case <-time.After(time.Second):
		t.Fatal("expected snapshot save after create")
	}

	rm.RemovePlayer("p1")

	select {
	case <-deleted:
	case <-time.After(time.Second):
		t.Fatal("expected snapshot delete after dissolution")
	}
}

func TestCleanupKeepsActiveGame(t *testing.T) {
	rm := newTestRegistry()
	rm.sessionTimeout = 0

	s, err := rm.CreateGame(newTestClient("p1"), "Alice", "ABCD", 3, testCategories, "standard")
	require.NoError(t, err)
	_, err = rm.StartGame("ABCD")
	require.NoError(t, err)
	defer s.cancelTimer()

	rm.cleanup()

	_, err = rm.GetSession("ABCD")
	assert.NoError(t, err)
}
