package protocol

import "encoding/json"

// --- 客户端请求 Payloads ---

// CreatePayload 创建游戏请求
type CreatePayload struct {
	Name        string   `json:"name"`
	Code        string   `json:"code"`
	Rounds      int      `json:"rounds"`
	Categories  []string `json:"categories"`
	ScoringType string   `json:"scoringType"`
}

// JoinPayload 加入游戏请求
type JoinPayload struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// StartGamePayload 开始游戏请求
type StartGamePayload struct {
	Code string `json:"code"`
}

// RestartGamePayload 重开信号请求
type RestartGamePayload struct {
	Code string `json:"code"`
}

// SendResponsePayload 提交答案请求
// Response 对服务端透明，原样存储并回发
type SendResponsePayload struct {
	Code     string          `json:"code"`
	Round    int             `json:"round"`
	Response json.RawMessage `json:"response"`
}

// SendScorePayload 提交分数请求
type SendScorePayload struct {
	Code  string `json:"code"`
	Round int    `json:"round"`
	Score int    `json:"score"`
}

// PlayerReadyPayload 准备进入下一轮请求
type PlayerReadyPayload struct {
	Code  string `json:"code"`
	Round int    `json:"round"`
}

// RemoveUserPayload 离开游戏请求
type RemoveUserPayload struct {
	Code string `json:"code"`
}

// StopTimerPayload 提前结束倒计时请求
type StopTimerPayload struct {
	Code string `json:"code"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID string `json:"playerId"`
}

// UserInfo 玩家信息
type UserInfo struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	AvatarIndex int                     `json:"avatarIndex"`
	Responses   map[int]json.RawMessage `json:"responses"`
	Scores      map[int]int             `json:"scores"`
	Ready       map[int]bool            `json:"ready"`
}

// GameState 游戏状态快照
type GameState struct {
	Code              string     `json:"code"`
	Users             []UserInfo `json:"users"`
	Started           bool       `json:"started"`
	CurrentRound      int        `json:"currentRound"`
	MaxRounds         int        `json:"maxRounds"`
	Categories        []string   `json:"categories"`
	ScoringType       string     `json:"scoringType"`
	CurrentAlphabet   string     `json:"currentAlphabet"`
	CurrentTimerValue int        `json:"currentTimerValue"`
}

// CreatedPayload 创建成功响应
type CreatedPayload struct {
	Users []UserInfo `json:"users"`
}

// JoinedPayload 加入成功响应
type JoinedPayload struct {
	Users      []UserInfo `json:"users"`
	MaxRounds  int        `json:"maxRounds"`
	Categories []string   `json:"categories"`
}

// GameDataPayload 玩家名单广播
type GameDataPayload struct {
	Users      []UserInfo `json:"users"`
	MaxRounds  int        `json:"maxRounds,omitempty"`
	Categories []string   `json:"categories,omitempty"`
}

// GameStartedPayload 游戏开始广播
type GameStartedPayload struct {
	GameState GameState `json:"gameState"`
}

// ScorePair 评分配对：Scorer 为 Target 的答案打分
type ScorePair struct {
	Scorer UserInfo `json:"scorer"`
	Target UserInfo `json:"target"`
}

// AllSubmittedPayload 全员提交答案广播
type AllSubmittedPayload struct {
	GameState     GameState   `json:"gameState"`
	ScorePartners []ScorePair `json:"scorePartners"`
}

// AllScoresSubmittedPayload 全员提交分数广播
type AllScoresSubmittedPayload struct {
	GameState GameState `json:"gameState"`
}

// AllPlayersReadyPayload 全员准备广播
type AllPlayersReadyPayload struct {
	GameState GameState `json:"gameState"`
}

// ScoreRecordedPayload 分数记录确认
type ScoreRecordedPayload struct {
	GameState GameState `json:"gameState"`
}

// ReadyRecordedPayload 准备记录确认
type ReadyRecordedPayload struct {
	GameState GameState `json:"gameState"`
}

// FinalScore 单个玩家的最终总分
type FinalScore struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	AvatarID int    `json:"avatarId"`
}

// GameEndedPayload 游戏结束广播
type GameEndedPayload struct {
	Scores    []FinalScore `json:"scores"`
	GameState GameState    `json:"gameState"`
}

// TimerValuePayload 倒计时广播
type TimerValuePayload struct {
	Timer int `json:"timer"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}
