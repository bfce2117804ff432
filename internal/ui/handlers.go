package ui

import (
	"encoding/json"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/letter-rush/internal/protocol"
)

// handleServerMessage 处理服务器消息
// 按消息类型分发到具体的处理函数
func (m *Model) handleServerMessage(msg *protocol.Message) tea.Cmd {
	switch msg.Type {
	case protocol.MsgConnected:
		return m.handleMsgConnected(msg)
	case protocol.MsgError:
		return m.handleMsgError(msg)

	// 房间相关
	case protocol.MsgCreated:
		return m.handleMsgCreated(msg)
	case protocol.MsgJoined:
		return m.handleMsgJoined(msg)
	case protocol.MsgGameData:
		return m.handleMsgGameData(msg)
	case protocol.MsgLeft:
		return nil

	// 对局相关
	case protocol.MsgGameStarted:
		return m.handleMsgGameStarted(msg)
	case protocol.MsgTimerValue:
		return m.handleMsgTimerValue(msg)
	case protocol.MsgAllSubmitted:
		return m.handleMsgAllSubmitted(msg)
	case protocol.MsgAllScoresSubmitted:
		return m.handleMsgAllScoresSubmitted(msg)
	case protocol.MsgAllPlayersReady:
		return m.handleMsgAllPlayersReady(msg)
	case protocol.MsgGameEnded:
		return m.handleMsgGameEnded(msg)
	case protocol.MsgRestartGame:
		return m.handleMsgRestartGame(msg)

	case protocol.MsgScoreRecorded, protocol.MsgReadyRecorded:
		return nil
	}

	return nil
}

func (m *Model) handleMsgConnected(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ConnectedPayload](msg)
	if err != nil {
		return nil
	}
	m.playerID = payload.PlayerID
	return nil
}

func (m *Model) handleMsgError(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	if err != nil {
		return nil
	}

	// 房间号撞车时换一个重试
	if payload.Code == protocol.ErrCodeCodeInUse && m.phase == PhaseCreateName {
		m.gameCode = randomGameCode()
		_ = m.client.CreateGame(m.playerName, m.gameCode, defaultRounds, defaultCategories, defaultScoringType)
		return nil
	}

	m.error = fmt.Sprintf("⚠️ %s", payload.Message)
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

// --- 房间相关消息处理 ---

func (m *Model) handleMsgCreated(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.CreatedPayload](msg)
	if err != nil {
		return nil
	}
	m.users = payload.Users
	m.isHost = true
	m.phase = PhaseLobby
	m.input.Reset()
	m.input.Placeholder = ""
	return nil
}

func (m *Model) handleMsgJoined(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.JoinedPayload](msg)
	if err != nil {
		return nil
	}
	m.users = payload.Users
	if payload.MaxRounds > 0 {
		m.maxRounds = payload.MaxRounds
	}
	if len(payload.Categories) > 0 {
		m.categories = payload.Categories
	}
	m.phase = PhaseLobby
	m.input.Reset()
	m.input.Placeholder = ""
	return nil
}

func (m *Model) handleMsgGameData(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.GameDataPayload](msg)
	if err != nil {
		return nil
	}
	m.users = payload.Users
	if payload.MaxRounds > 0 {
		m.maxRounds = payload.MaxRounds
	}
	if len(payload.Categories) > 0 {
		m.categories = payload.Categories
	}
	return nil
}

// --- 对局相关消息处理 ---

func (m *Model) handleMsgGameStarted(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.GameStartedPayload](msg)
	if err != nil {
		return nil
	}
	m.applyGameState(payload.GameState)
	m.resetRound()
	m.phase = PhaseRound
	return nil
}

func (m *Model) handleMsgTimerValue(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.TimerValuePayload](msg)
	if err != nil {
		return nil
	}
	m.timerValue = payload.Timer
	// 时间到，把已填的答案连同输入框里的内容一并提交
	if payload.Timer == 0 && m.phase == PhaseRound && !m.submitted {
		if m.answerIdx < len(m.answers) {
			m.answers[m.answerIdx] = m.input.Value()
		}
		m.input.Reset()
		m.submitResponses()
	}
	return nil
}

func (m *Model) handleMsgAllSubmitted(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.AllSubmittedPayload](msg)
	if err != nil {
		return nil
	}
	m.applyGameState(payload.GameState)

	// 找到自己要评分的对象
	for _, pair := range payload.ScorePartners {
		if pair.Scorer.ID == m.playerID {
			target := pair.Target
			m.scoreTarget = &target
			m.targetResponses = decodeAnswers(target.Responses[m.currentRound])
			break
		}
	}

	m.scored = false
	m.phase = PhaseScoring
	m.input.Reset()
	m.input.Placeholder = fmt.Sprintf("0-%d", len(m.categories)*10)
	return nil
}

func (m *Model) handleMsgAllScoresSubmitted(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.AllScoresSubmittedPayload](msg)
	if err != nil {
		return nil
	}
	m.applyGameState(payload.GameState)
	m.readySent = false
	m.phase = PhaseInterlude
	m.input.Reset()
	m.input.Placeholder = "回车继续"
	return nil
}

func (m *Model) handleMsgAllPlayersReady(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.AllPlayersReadyPayload](msg)
	if err != nil {
		return nil
	}
	m.applyGameState(payload.GameState)
	m.resetRound()
	m.phase = PhaseRound
	return nil
}

func (m *Model) handleMsgGameEnded(msg *protocol.Message) tea.Cmd {
	payload, err := protocol.ParsePayload[protocol.GameEndedPayload](msg)
	if err != nil {
		return nil
	}
	m.applyGameState(payload.GameState)
	m.finalScores = payload.Scores
	m.phase = PhaseGameOver
	m.input.Reset()
	m.input.Placeholder = "r 再来一局，回车返回房间"
	return nil
}

func (m *Model) handleMsgRestartGame(msg *protocol.Message) tea.Cmd {
	// 有人点了再来一局，全员回到房间等待
	m.finalScores = nil
	m.phase = PhaseLobby
	m.input.Reset()
	m.input.Placeholder = ""
	return nil
}

// applyGameState 用服务端快照刷新本地状态
func (m *Model) applyGameState(state protocol.GameState) {
	m.users = state.Users
	m.currentRound = state.CurrentRound
	m.currentLetter = state.CurrentAlphabet
	m.timerValue = state.CurrentTimerValue
	if state.MaxRounds > 0 {
		m.maxRounds = state.MaxRounds
	}
	if len(state.Categories) > 0 {
		m.categories = state.Categories
	}
	if state.ScoringType != "" {
		m.scoringType = state.ScoringType
	}
}

// encodeAnswers 把答案编码为 JSON 数组
// 服务端不理解答案内容，原样转发给评分者
func encodeAnswers(answers []string) json.RawMessage {
	data, err := json.Marshal(answers)
	if err != nil {
		return json.RawMessage("[]")
	}
	return data
}

// decodeAnswers 解码对手的答案，失败时原文展示
func decodeAnswers(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var answers []string
	if err := json.Unmarshal(raw, &answers); err != nil {
		return []string{string(raw)}
	}
	return answers
}
