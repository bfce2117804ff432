package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001

	ErrCodeCodeInUse      = 2001
	ErrCodeInvalidCode    = 2002
	ErrCodeNameTaken      = 2003
	ErrCodeGameInProgress = 2004
	ErrCodeRoomFull       = 2005
	ErrCodeGameNotFound   = 2006

	ErrCodeInvalidScore = 3001

	// 资源池耗尽属于内部不变量被破坏，正常流程不会出现
	ErrCodePoolExhausted = 5001
)

// ErrorMessages 错误码对应的消息
// 文案沿用原始客户端契约，不做本地化
var ErrorMessages = map[int]string{
	ErrCodeUnknown:        "Something went wrong",
	ErrCodeInvalidMsg:     "Invalid message format",
	ErrCodeCodeInUse:      "Generate New Game Code",
	ErrCodeInvalidCode:    "Invalid Game Code",
	ErrCodeNameTaken:      "Username is taken",
	ErrCodeGameInProgress: "The Game is in progress",
	ErrCodeRoomFull:       "Uh.. oh.. too many players in the game",
	ErrCodeGameNotFound:   "Game not found",
	ErrCodeInvalidScore:   "Invalid Score Value",
	ErrCodePoolExhausted:  "Internal server error",
}
