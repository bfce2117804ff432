package apperrors

import (
	"github.com/palemoky/letter-rush/internal/protocol"
)

// GameError 游戏错误（注册表和回合流程共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
// 文案直接作为调用方确认里的 error 字段下发
var (
	ErrCodeInUse      = &GameError{Code: protocol.ErrCodeCodeInUse, Message: protocol.ErrorMessages[protocol.ErrCodeCodeInUse]}
	ErrInvalidCode    = &GameError{Code: protocol.ErrCodeInvalidCode, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidCode]}
	ErrNameTaken      = &GameError{Code: protocol.ErrCodeNameTaken, Message: protocol.ErrorMessages[protocol.ErrCodeNameTaken]}
	ErrGameInProgress = &GameError{Code: protocol.ErrCodeGameInProgress, Message: protocol.ErrorMessages[protocol.ErrCodeGameInProgress]}
	ErrRoomFull       = &GameError{Code: protocol.ErrCodeRoomFull, Message: protocol.ErrorMessages[protocol.ErrCodeRoomFull]}
	ErrGameNotFound   = &GameError{Code: protocol.ErrCodeGameNotFound, Message: protocol.ErrorMessages[protocol.ErrCodeGameNotFound]}
	ErrInvalidScore   = &GameError{Code: protocol.ErrCodeInvalidScore, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidScore]}
	ErrPoolExhausted  = &GameError{Code: protocol.ErrCodePoolExhausted, Message: protocol.ErrorMessages[protocol.ErrCodePoolExhausted]}
)
