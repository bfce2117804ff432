package ui

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/letter-rush/internal/client"
	"github.com/palemoky/letter-rush/internal/protocol"
)

// 游戏阶段
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseMenu
	PhaseCreateName
	PhaseJoinName
	PhaseJoinCode
	PhaseLobby
	PhaseRound
	PhaseScoring
	PhaseInterlude
	PhaseGameOver
)

// 默认局设置，创建游戏时使用
var defaultCategories = []string{"动物", "食物", "城市", "名字"}

const (
	defaultRounds      = 3
	defaultScoringType = "standard"
)

// ServerMessage 服务器消息（用于 tea.Msg）
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg 连接成功消息
type ConnectedMsg struct{}

// ConnectionErrorMsg 连接错误消息
type ConnectionErrorMsg struct {
	Err error
}

// ClearErrorMsg 清除错误消息
type ClearErrorMsg struct{}

// Model 联机对局的 bubbletea model
type Model struct {
	client *client.Client
	phase  GamePhase
	error  string

	// 玩家信息
	playerID   string
	playerName string
	gameCode   string
	isHost     bool

	// 对局状态
	users       []protocol.UserInfo
	maxRounds   int
	categories  []string
	scoringType string

	currentRound  int
	currentLetter string
	timerValue    int

	// 本轮答案，每个类别一项
	answers   []string
	answerIdx int
	submitted bool

	// 评分对象
	scoreTarget     *protocol.UserInfo
	targetResponses []string
	scored          bool
	readySent       bool

	// 终局结算
	finalScores []protocol.FinalScore

	// UI 组件
	input  textinput.Model
	width  int
	height int
}

// NewModel 创建联机 model
func NewModel(serverURL string) *Model {
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 24
	ti.Focus()

	return &Model{
		client:      client.NewClient(serverURL),
		phase:       PhaseConnecting,
		input:       ti,
		maxRounds:   defaultRounds,
		categories:  defaultCategories,
		scoringType: defaultScoringType,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.connectToServer(), textinput.Blink)
}

// connectToServer 连接服务器
func (m *Model) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

// listenForMessages 监听服务器消息
func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		handled, returnCmd := m.handleKeyPress(msg)
		if handled {
			return m, returnCmd
		}

	case ConnectedMsg:
		m.phase = PhaseMenu
		m.playerID = m.client.PlayerID
		m.input.Placeholder = "输入选项 (1-2)"
		cmds = append(cmds, m.listenForMessages())

	case ConnectionErrorMsg:
		m.error = fmt.Sprintf("无法连接到服务器: %v\n\n按 ESC 退出", msg.Err)
		m.phase = PhaseConnecting

	case ClearErrorMsg:
		m.error = ""

	case ServerMessage:
		cmd = m.handleServerMessage(msg.Msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress 处理按键消息，返回是否已处理和命令
func (m *Model) handleKeyPress(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.client.Close()
		return true, tea.Quit
	case tea.KeyEsc:
		return m.handleEscKey()
	case tea.KeyEnter:
		return true, m.handleEnter()
	case tea.KeyCtrlT:
		// 房主提前结束倒计时
		if m.phase == PhaseRound && m.isHost {
			_ = m.client.StopTimer(m.gameCode)
			return true, nil
		}
	}
	return false, nil
}

// handleEscKey 处理 ESC 键
func (m *Model) handleEscKey() (bool, tea.Cmd) {
	switch m.phase {
	case PhaseCreateName, PhaseJoinName, PhaseJoinCode:
		m.phase = PhaseMenu
		m.error = ""
		m.input.Reset()
		m.input.Placeholder = "输入选项 (1-2)"
		return true, nil
	case PhaseLobby, PhaseGameOver:
		// 离开当前对局回到主菜单
		if m.gameCode != "" {
			_ = m.client.LeaveGame(m.gameCode)
		}
		m.resetGame()
		m.phase = PhaseMenu
		m.input.Reset()
		m.input.Placeholder = "输入选项 (1-2)"
		return true, nil
	case PhaseRound, PhaseScoring, PhaseInterlude:
		// 对局进行中，避免误操作
		m.error = "对局进行中，按 Ctrl+C 强制退出"
		return true, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return ClearErrorMsg{}
		})
	}
	m.client.Close()
	return true, tea.Quit
}

// handleEnter 处理回车键
func (m *Model) handleEnter() tea.Cmd {
	input := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.error = ""

	switch m.phase {
	case PhaseMenu:
		switch input {
		case "1":
			m.phase = PhaseCreateName
			m.input.Placeholder = "输入昵称..."
		case "2":
			m.phase = PhaseJoinName
			m.input.Placeholder = "输入昵称..."
		}

	case PhaseCreateName:
		if input == "" {
			return nil
		}
		m.playerName = input
		m.gameCode = randomGameCode()
		_ = m.client.CreateGame(m.playerName, m.gameCode, defaultRounds, defaultCategories, defaultScoringType)

	case PhaseJoinName:
		if input == "" {
			return nil
		}
		m.playerName = input
		m.phase = PhaseJoinCode
		m.input.Placeholder = "输入房间号..."

	case PhaseJoinCode:
		if input == "" {
			return nil
		}
		m.gameCode = strings.ToUpper(input)
		_ = m.client.JoinGame(m.playerName, m.gameCode)

	case PhaseLobby:
		_ = m.client.StartGame(m.gameCode)

	case PhaseRound:
		if m.submitted {
			return nil
		}
		// 记录当前类别的答案，推进到下一个
		m.answers[m.answerIdx] = input
		if m.answerIdx < len(m.categories)-1 {
			m.answerIdx++
			m.input.Placeholder = m.categories[m.answerIdx]
		} else {
			m.submitResponses()
		}

	case PhaseScoring:
		if m.scored {
			return nil
		}
		score, err := strconv.Atoi(input)
		if err != nil {
			m.error = "请输入数字分数"
			return nil
		}
		m.scored = true
		_ = m.client.SendScore(m.gameCode, m.currentRound, score)

	case PhaseInterlude:
		if !m.readySent {
			m.readySent = true
			_ = m.client.Ready(m.gameCode, m.currentRound)
		}

	case PhaseGameOver:
		if strings.EqualFold(input, "r") {
			_ = m.client.RestartGame(m.gameCode)
		} else {
			m.phase = PhaseLobby
			m.input.Placeholder = ""
		}
	}

	return nil
}

// submitResponses 序列化本轮答案并提交
func (m *Model) submitResponses() {
	m.submitted = true
	data := encodeAnswers(m.answers)
	_ = m.client.SendResponse(m.gameCode, m.currentRound, data)
}

// resetGame 清空对局状态
func (m *Model) resetGame() {
	m.gameCode = ""
	m.isHost = false
	m.users = nil
	m.currentRound = 0
	m.currentLetter = ""
	m.timerValue = 0
	m.answers = nil
	m.answerIdx = 0
	m.submitted = false
	m.scoreTarget = nil
	m.targetResponses = nil
	m.scored = false
	m.readySent = false
	m.finalScores = nil
}

// resetRound 清空单轮状态，进入新一轮答题
func (m *Model) resetRound() {
	m.answers = make([]string, len(m.categories))
	m.answerIdx = 0
	m.submitted = false
	m.scoreTarget = nil
	m.targetResponses = nil
	m.scored = false
	m.readySent = false
	if len(m.categories) > 0 {
		m.input.Placeholder = m.categories[0]
	}
	m.input.Reset()
}

// randomGameCode 生成 4 位房间号
func randomGameCode() string {
	const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	b := make([]byte, 4)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}
