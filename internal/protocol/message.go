package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
// 事件名沿用原始 socket 契约，保持 camelCase
const (
	MsgCreate       MessageType = "create"             // 创建游戏
	MsgJoin         MessageType = "join"               // 加入游戏
	MsgStartGame    MessageType = "startGame"          // 房主开始游戏
	MsgRestartGame  MessageType = "restartGame"        // 重开信号（仅广播）
	MsgSendResponse MessageType = "sendResponse"       // 提交本轮答案
	MsgSendScore    MessageType = "sendScore"          // 提交互评分数
	MsgPlayerReady  MessageType = "playerReady"        // 准备进入下一轮
	MsgRemoveUser   MessageType = "removeUserFromGame" // 主动离开游戏
	MsgStopTimer    MessageType = "stopTimer"          // 提前结束倒计时
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功，下发玩家 ID

	// 调用方确认
	MsgCreated       MessageType = "created"       // 创建成功
	MsgJoined        MessageType = "joined"        // 加入成功
	MsgLeft          MessageType = "left"          // 离开成功
	MsgScoreRecorded MessageType = "scoreRecorded" // 分数已记录
	MsgReadyRecorded MessageType = "readyRecorded" // 准备已记录

	// 房间广播
	MsgGameData           MessageType = "gameData"           // 玩家名单更新
	MsgGameStarted        MessageType = "gameStarted"        // 游戏开始
	MsgAllSubmitted       MessageType = "allSubmitted"       // 全员已提交答案
	MsgAllScoresSubmitted MessageType = "allScoresSubmitted" // 全员已提交分数
	MsgAllPlayersReady    MessageType = "allPlayersReady"    // 全员已准备，进入下一轮
	MsgGameEnded          MessageType = "gameEnded"          // 游戏结束，下发总分
	MsgTimerValue         MessageType = "timerValue"         // 倒计时数值

	// 错误
	MsgError MessageType = "error" // 错误消息
)
