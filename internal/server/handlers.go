package server

import (
	"github.com/palemoky/letter-rush/internal/protocol"
	"github.com/palemoky/letter-rush/internal/types"
)

// handleCreate 处理创建游戏
func (h *Handler) handleCreate(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.CreatePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 如果已在房间中，先离开
	if client.GetGame() != "" {
		h.registry.RemovePlayer(client.GetID())
	}

	s, err := h.registry.CreateGame(client, payload.Name, payload.Code,
		payload.Rounds, payload.Categories, payload.ScoringType)
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgCreated, protocol.CreatedPayload{
		Users: s.UserInfos(),
	}))
}

// handleJoin 处理加入游戏
func (h *Handler) handleJoin(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 如果已在房间中，先离开
	if client.GetGame() != "" {
		h.registry.RemovePlayer(client.GetID())
	}

	s, err := h.registry.JoinGame(client, payload.Name, payload.Code)
	if err != nil {
		sendError(client, err)
		return
	}

	state := s.Snapshot()
	client.SendMessage(protocol.MustNewMessage(protocol.MsgJoined, protocol.JoinedPayload{
		Users:      state.Users,
		MaxRounds:  state.MaxRounds,
		Categories: state.Categories,
	}))
}

// handleRemoveUser 处理主动离开
// 移除非成员是静默无操作，离开从不报错
func (h *Handler) handleRemoveUser(client types.ClientInterface) {
	h.registry.RemovePlayer(client.GetID())
	client.SendMessage(protocol.MustNewMessage(protocol.MsgLeft, nil))
}

// handleStartGame 处理开始游戏
func (h *Handler) handleStartGame(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.StartGamePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	state, err := h.registry.StartGame(payload.Code)
	if err != nil {
		sendError(client, err)
		return
	}

	// 广播已含调用方，确认另发一份完整状态
	client.SendMessage(protocol.MustNewMessage(protocol.MsgGameStarted, protocol.GameStartedPayload{
		GameState: state,
	}))
}

// handleRestartGame 处理重开信号：仅广播，不改动服务端状态
func (h *Handler) handleRestartGame(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.RestartGamePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	s, err := h.registry.GetSession(payload.Code)
	if err != nil {
		sendError(client, err)
		return
	}

	s.Broadcast(protocol.MustNewMessage(protocol.MsgRestartGame, nil))
}

// handleSendResponse 处理答案提交
func (h *Handler) handleSendResponse(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.SendResponsePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if err := h.registry.SubmitResponse(payload.Code, client.GetID(), payload.Round, payload.Response); err != nil {
		sendError(client, err)
	}
}

// handleSendScore 处理分数提交
func (h *Handler) handleSendScore(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.SendScorePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	state, err := h.registry.SubmitScore(payload.Code, client.GetID(), payload.Round, payload.Score)
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgScoreRecorded, protocol.ScoreRecordedPayload{
		GameState: state,
	}))
}

// handlePlayerReady 处理准备提交
func (h *Handler) handlePlayerReady(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PlayerReadyPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	state, err := h.registry.SetReady(payload.Code, client.GetID(), payload.Round)
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgReadyRecorded, protocol.ReadyRecordedPayload{
		GameState: state,
	}))
}

// handleStopTimer 处理提前结束倒计时
// 没有活动倒计时时是无操作：不广播也不报错
func (h *Handler) handleStopTimer(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.StopTimerPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	s, err := h.registry.GetSession(payload.Code)
	if err != nil {
		return
	}

	s.StopTimer()
}
