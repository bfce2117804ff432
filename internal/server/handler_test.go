package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/letter-rush/internal/game"
	"github.com/palemoky/letter-rush/internal/protocol"
	"github.com/palemoky/letter-rush/internal/testutil"
)

func newTestHandler() *Handler {
	return NewHandler(game.NewRegistry(nil, time.Hour))
}

var testCategories = []string{"Animal", "Food", "City", "Name"}

func createMsg(name, code string) *protocol.Message {
	return protocol.MustNewMessage(protocol.MsgCreate, protocol.CreatePayload{
		Name:        name,
		Code:        code,
		Rounds:      3,
		Categories:  testCategories,
		ScoringType: "standard",
	})
}

func joinMsg(name, code string) *protocol.Message {
	return protocol.MustNewMessage(protocol.MsgJoin, protocol.JoinPayload{
		Name: name,
		Code: code,
	})
}

func errorText(t *testing.T, c *testutil.SimpleClient) string {
	t.Helper()
	msg := c.LastMessageOfType(protocol.MsgError)
	require.NotNil(t, msg, "expected an error ack")
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	return payload.Message
}

func TestHandleCreate(t *testing.T) {
	h := newTestHandler()
	c := &testutil.SimpleClient{ID: "p1"}

	h.Handle(c, createMsg("Alice", "ABCD"))

	assert.Equal(t, "ABCD", c.GameCode)

	ack := c.LastMessageOfType(protocol.MsgCreated)
	require.NotNil(t, ack)
	payload, err := protocol.ParsePayload[protocol.CreatedPayload](ack)
	require.NoError(t, err)
	require.Len(t, payload.Users, 1)
	assert.Equal(t, "Alice", payload.Users[0].Name)
}

func TestHandleCreateDuplicateCode(t *testing.T) {
	h := newTestHandler()
	h.Handle(&testutil.SimpleClient{ID: "p1"}, createMsg("Alice", "ABCD"))

	c2 := &testutil.SimpleClient{ID: "p2"}
	h.Handle(c2, createMsg("Bob", "ABCD"))

	assert.Equal(t, "Generate New Game Code", errorText(t, c2))
	assert.Nil(t, c2.LastMessageOfType(protocol.MsgCreated))
}

func TestHandleJoin(t *testing.T) {
	h := newTestHandler()
	h.Handle(&testutil.SimpleClient{ID: "p1"}, createMsg("Alice", "ABCD"))

	c2 := &testutil.SimpleClient{ID: "p2"}
	h.Handle(c2, joinMsg("Bob", "ABCD"))

	ack := c2.LastMessageOfType(protocol.MsgJoined)
	require.NotNil(t, ack)
	payload, err := protocol.ParsePayload[protocol.JoinedPayload](ack)
	require.NoError(t, err)
	assert.Len(t, payload.Users, 2)
	assert.Equal(t, 3, payload.MaxRounds)
	assert.Equal(t, testCategories, payload.Categories)
}

func TestHandleJoinInvalidCode(t *testing.T) {
	h := newTestHandler()
	c := &testutil.SimpleClient{ID: "p1"}

	h.Handle(c, joinMsg("Bob", "NOPE"))

	assert.Equal(t, "Invalid Game Code", errorText(t, c))
}

func TestHandleJoinNameTaken(t *testing.T) {
	h := newTestHandler()
	h.Handle(&testutil.SimpleClient{ID: "p1"}, createMsg("Alice", "ABCD"))

	c2 := &testutil.SimpleClient{ID: "p2"}
	h.Handle(c2, joinMsg("  alice ", "ABCD"))

	assert.Equal(t, "Username is taken", errorText(t, c2))
}

func TestHandleCreateLeavesCurrentGame(t *testing.T) {
	h := newTestHandler()
	c1 := &testutil.SimpleClient{ID: "p1"}
	c2 := &testutil.SimpleClient{ID: "p2"}

	h.Handle(c1, createMsg("Alice", "AAAA"))
	h.Handle(c2, joinMsg("Bob", "AAAA"))

	// Creating a new game implicitly leaves the old one
	h.Handle(c2, createMsg("Bob", "BBBB"))
	assert.Equal(t, "BBBB", c2.GameCode)

	roster := c1.LastMessageOfType(protocol.MsgGameData)
	require.NotNil(t, roster)
	payload, err := protocol.ParsePayload[protocol.GameDataPayload](roster)
	require.NoError(t, err)
	assert.Len(t, payload.Users, 1)
}

func TestHandleRemoveUser(t *testing.T) {
	h := newTestHandler()
	c := &testutil.SimpleClient{ID: "p1"}
	h.Handle(c, createMsg("Alice", "ABCD"))

	h.Handle(c, protocol.MustNewMessage(protocol.MsgRemoveUser, protocol.RemoveUserPayload{Code: "ABCD"}))
	assert.Empty(t, c.GameCode)
	assert.NotNil(t, c.LastMessageOfType(protocol.MsgLeft))

	// Leaving when not in a game is still acknowledged
	c2 := &testutil.SimpleClient{ID: "p2"}
	h.Handle(c2, protocol.MustNewMessage(protocol.MsgRemoveUser, protocol.RemoveUserPayload{Code: "ABCD"}))
	assert.NotNil(t, c2.LastMessageOfType(protocol.MsgLeft))
	assert.Nil(t, c2.LastMessageOfType(protocol.MsgError))
}

func TestHandleStartGame(t *testing.T) {
	h := newTestHandler()
	c := &testutil.SimpleClient{ID: "p1"}
	h.Handle(c, createMsg("Alice", "ABCD"))

	h.Handle(c, protocol.MustNewMessage(protocol.MsgStartGame, protocol.StartGamePayload{Code: "ABCD"}))

	ack := c.LastMessageOfType(protocol.MsgGameStarted)
	require.NotNil(t, ack)
	payload, err := protocol.ParsePayload[protocol.GameStartedPayload](ack)
	require.NoError(t, err)
	assert.True(t, payload.GameState.Started)
	assert.Equal(t, 1, payload.GameState.CurrentRound)
	assert.Regexp(t, "^[A-Z]$", payload.GameState.CurrentAlphabet)

	stopSessionTimer(t, h, "ABCD")
}

func TestHandleStartGameNotFound(t *testing.T) {
	h := newTestHandler()
	c := &testutil.SimpleClient{ID: "p1"}

	h.Handle(c, protocol.MustNewMessage(protocol.MsgStartGame, protocol.StartGamePayload{Code: "NOPE"}))

	assert.Equal(t, "Game not found", errorText(t, c))
}

func TestHandleSendScoreInvalid(t *testing.T) {
	h := newTestHandler()
	c := &testutil.SimpleClient{ID: "p1"}
	h.Handle(c, createMsg("Alice", "ABCD"))
	h.Handle(c, protocol.MustNewMessage(protocol.MsgStartGame, protocol.StartGamePayload{Code: "ABCD"}))

	h.Handle(c, protocol.MustNewMessage(protocol.MsgSendScore, protocol.SendScorePayload{
		Code:  "ABCD",
		Round: 1,
		Score: len(testCategories)*10 + 1,
	}))

	assert.Equal(t, "Invalid Score Value", errorText(t, c))
	assert.Nil(t, c.LastMessageOfType(protocol.MsgScoreRecorded))

	stopSessionTimer(t, h, "ABCD")
}

func TestHandleStopTimerUnknownCode(t *testing.T) {
	h := newTestHandler()
	c := &testutil.MockClient{}

	// Unknown code is silently ignored, no error and no ack
	h.Handle(c, protocol.MustNewMessage(protocol.MsgStopTimer, protocol.StopTimerPayload{Code: "NOPE"}))
	c.AssertNotCalled(t, "SendMessage", mock.Anything)
}

func TestHandleUnknownMessageType(t *testing.T) {
	h := newTestHandler()
	c := &testutil.SimpleClient{ID: "p1"}

	h.Handle(c, &protocol.Message{Type: "bogus"})

	msg := c.LastMessageOfType(protocol.MsgError)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, payload.Code)
}

func stopSessionTimer(t *testing.T, h *Handler, code string) {
	t.Helper()
	s, err := h.registry.GetSession(code)
	require.NoError(t, err)
	s.StopTimer()
}
