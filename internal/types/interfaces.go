package types

import (
	"context"

	"github.com/palemoky/letter-rush/internal/protocol"
)

// ClientInterface 定义客户端接口（用于打破循环依赖）
type ClientInterface interface {
	GetID() string
	GetName() string
	SetName(name string)
	GetGame() string
	SetGame(code string)
	SendMessage(msg *protocol.Message)
	Close()
}

// GameStore 游戏快照存储接口
// Registry 通过它把会话状态异步写入 Redis
type GameStore interface {
	SaveGame(ctx context.Context, code string, snapshot any) error
	DeleteGame(ctx context.Context, code string) error
}
