package game

import (
	"strings"
	"sync"
	"time"

	"github.com/palemoky/letter-rush/internal/game/pool"
	"github.com/palemoky/letter-rush/internal/protocol"
)

const (
	// MaxPlayers 每局最大玩家数，与头像槽位数一致
	MaxPlayers = 10

	// 倒计时到达该值后自行终止并归零
	timerExpiryValue = 61
	// 提前结束倒计时先下发的值，让客户端感知「本轮被截断」
	timerCutValue = 60
)

// SessionState 会话状态
type SessionState int

const (
	SessionLobby SessionState = iota
	SessionRoundActive
	SessionAwaitingScores
	SessionAwaitingReady
	SessionEnded
)

// Session 一个房间的完整状态
type Session struct {
	Code        string
	Users       []*Player // 加入顺序固定，用于评分配对
	Started     bool
	MaxRounds   int
	Categories  []string
	ScoringType string
	CreatedAt   time.Time

	CurrentRound      int // 开局后从 1 计数，大厅阶段为 0
	CurrentAlphabet   string
	CurrentTimerValue int

	state      SessionState
	avatarPool *pool.Pool[int]
	letterPool *pool.Pool[string]

	// 倒计时：代数在每次 Start/Stop 时递增，
	// 在途 tick 发现代数不匹配即放弃，保证取消无竞争
	timerGen     uint64
	timerActive  bool
	tickInterval time.Duration

	mu sync.RWMutex
}

func newSession(code string, rounds int, categories []string, scoringType string, tickInterval time.Duration) *Session {
	return &Session{
		Code:         code,
		Users:        make([]*Player, 0, MaxPlayers),
		MaxRounds:    rounds,
		Categories:   categories,
		ScoringType:  scoringType,
		CreatedAt:    time.Now(),
		state:        SessionLobby,
		avatarPool:   pool.New(pool.Avatars(MaxPlayers)),
		letterPool:   pool.New(pool.Alphabet()),
		tickInterval: tickInterval,
	}
}

// State 返回当前会话状态
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Broadcast 广播消息给会话内所有玩家
func (s *Session) Broadcast(msg *protocol.Message) {
	s.mu.RLock()
	clients := s.clientsLocked()
	s.mu.RUnlock()

	for _, c := range clients {
		c.SendMessage(msg)
	}
}

// clientsLocked 在持锁状态下拷贝当前客户端列表
// 发送必须在锁外进行，避免慢客户端阻塞会话
func (s *Session) clientsLocked() []clientSender {
	clients := make([]clientSender, 0, len(s.Users))
	for _, u := range s.Users {
		if u.Client != nil {
			clients = append(clients, u.Client)
		}
	}
	return clients
}

type clientSender interface {
	SendMessage(msg *protocol.Message)
}

// findPlayerLocked 按连接 ID 查找玩家
func (s *Session) findPlayerLocked(playerID string) *Player {
	for _, u := range s.Users {
		if u.ID == playerID {
			return u
		}
	}
	return nil
}

// hasNameLocked 检查昵称是否已被占用（去空白、不区分大小写）
func (s *Session) hasNameLocked(name string) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, u := range s.Users {
		if strings.ToLower(strings.TrimSpace(u.Name)) == normalized {
			return true
		}
	}
	return false
}
