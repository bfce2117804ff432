package server

import (
	"errors"
	"log"

	"github.com/palemoky/letter-rush/internal/apperrors"
	"github.com/palemoky/letter-rush/internal/game"
	"github.com/palemoky/letter-rush/internal/protocol"
	"github.com/palemoky/letter-rush/internal/types"
)

// Handler 消息处理器
// 只依赖注册表，便于单独测试
type Handler struct {
	registry *game.Registry
}

// NewHandler 创建处理器
func NewHandler(registry *game.Registry) *Handler {
	return &Handler{registry: registry}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	switch msg.Type {
	// 房间操作
	case protocol.MsgCreate:
		h.handleCreate(client, msg)
	case protocol.MsgJoin:
		h.handleJoin(client, msg)
	case protocol.MsgRemoveUser:
		h.handleRemoveUser(client)

	// 对局操作
	case protocol.MsgStartGame:
		h.handleStartGame(client, msg)
	case protocol.MsgRestartGame:
		h.handleRestartGame(client, msg)
	case protocol.MsgSendResponse:
		h.handleSendResponse(client, msg)
	case protocol.MsgSendScore:
		h.handleSendScore(client, msg)
	case protocol.MsgPlayerReady:
		h.handlePlayerReady(client, msg)
	case protocol.MsgStopTimer:
		h.handleStopTimer(client, msg)

	default:
		log.Printf("⚠️  未知消息类型: '%s' (来自连接: %s)", msg.Type, client.GetID())
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// sendError 把错误作为调用方确认下发，不向房间广播
func sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}
	client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
}
