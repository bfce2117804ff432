package client

import (
	"encoding/json"

	"github.com/palemoky/letter-rush/internal/protocol"
)

// --- 便捷方法 ---

// CreateGame 创建游戏
func (c *Client) CreateGame(name, code string, rounds int, categories []string, scoringType string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgCreate, protocol.CreatePayload{
		Name:        name,
		Code:        code,
		Rounds:      rounds,
		Categories:  categories,
		ScoringType: scoringType,
	}))
}

// JoinGame 加入游戏
func (c *Client) JoinGame(name, code string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgJoin, protocol.JoinPayload{
		Name: name,
		Code: code,
	}))
}

// StartGame 开始游戏
func (c *Client) StartGame(code string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgStartGame, protocol.StartGamePayload{
		Code: code,
	}))
}

// RestartGame 重新开始游戏
func (c *Client) RestartGame(code string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgRestartGame, protocol.RestartGamePayload{
		Code: code,
	}))
}

// SendResponse 提交本轮答案
func (c *Client) SendResponse(code string, round int, response json.RawMessage) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgSendResponse, protocol.SendResponsePayload{
		Code:     code,
		Round:    round,
		Response: response,
	}))
}

// SendScore 提交评分
func (c *Client) SendScore(code string, round, score int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgSendScore, protocol.SendScorePayload{
		Code:  code,
		Round: round,
		Score: score,
	}))
}

// Ready 确认进入下一轮
func (c *Client) Ready(code string, round int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPlayerReady, protocol.PlayerReadyPayload{
		Code:  code,
		Round: round,
	}))
}

// LeaveGame 离开游戏
func (c *Client) LeaveGame(code string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgRemoveUser, protocol.RemoveUserPayload{
		Code: code,
	}))
}

// StopTimer 主持人提前结束倒计时
func (c *Client) StopTimer(code string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgStopTimer, protocol.StopTimerPayload{
		Code: code,
	}))
}
