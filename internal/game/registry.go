package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/palemoky/letter-rush/internal/apperrors"
	"github.com/palemoky/letter-rush/internal/protocol"
	"github.com/palemoky/letter-rush/internal/types"
)

// Registry 房间码到会话的注册表，进程内唯一持有者
// 跨房间操作互不影响，串行化边界在每个会话自身的锁上
type Registry struct {
	store          types.GameStore // 可为 nil（测试）
	sessionTimeout time.Duration
	tickInterval   time.Duration
	sessions       map[string]*Session
	mu             sync.RWMutex
}

// NewRegistry 创建注册表并启动空闲大厅清理协程
func NewRegistry(store types.GameStore, sessionTimeout time.Duration) *Registry {
	rm := &Registry{
		store:          store,
		sessionTimeout: sessionTimeout,
		tickInterval:   time.Second,
		sessions:       make(map[string]*Session),
	}

	go rm.cleanupLoop()

	return rm
}

// CreateGame 创建会话并把创建者作为第一个玩家加入
func (rm *Registry) CreateGame(client types.ClientInterface, name, code string, rounds int, categories []string, scoringType string) (*Session, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, exists := rm.sessions[code]; exists {
		return nil, apperrors.ErrCodeInUse
	}

	s := newSession(code, rounds, categories, scoringType, rm.tickInterval)

	avatar, err := s.avatarPool.DrawRandom()
	if err != nil {
		// 新建的满池不可能抽空，出现即为内部不变量被破坏
		log.Printf("💥 房间 %s 头像池异常: %v", code, err)
		return nil, apperrors.ErrPoolExhausted
	}

	player := newPlayer(client, name, avatar)
	s.Users = append(s.Users, player)
	client.SetName(name)
	client.SetGame(code)

	rm.sessions[code] = s
	rm.saveSnapshot(s)

	log.Printf("🏠 房间 %s 已创建，玩家 %s (%d 轮, %d 个类别)", code, name, rounds, len(categories))

	// 广播最新名单（此刻只有创建者自己）
	s.Broadcast(protocol.MustNewMessage(protocol.MsgGameData, protocol.GameDataPayload{
		Users: s.UserInfos(),
	}))

	return s, nil
}

// JoinGame 加入会话
// 校验顺序固定：房间码 → 昵称唯一 → 是否已开局 → 满员
func (rm *Registry) JoinGame(client types.ClientInterface, name, code string) (*Session, error) {
	rm.mu.RLock()
	s, exists := rm.sessions[code]
	rm.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrInvalidCode
	}

	s.mu.Lock()

	if s.hasNameLocked(name) {
		s.mu.Unlock()
		return nil, apperrors.ErrNameTaken
	}
	if s.Started {
		s.mu.Unlock()
		return nil, apperrors.ErrGameInProgress
	}
	if len(s.Users) >= MaxPlayers {
		s.mu.Unlock()
		return nil, apperrors.ErrRoomFull
	}

	avatar, err := s.avatarPool.DrawRandom()
	if err != nil {
		// 满员检查保证头像池不会先于容量耗尽
		s.mu.Unlock()
		log.Printf("💥 房间 %s 头像池异常: %v", code, err)
		return nil, apperrors.ErrPoolExhausted
	}

	player := newPlayer(client, name, avatar)
	s.Users = append(s.Users, player)
	client.SetName(name)
	client.SetGame(code)

	users := s.userInfosLocked()
	maxRounds := s.MaxRounds
	categories := s.Categories
	s.mu.Unlock()

	rm.saveSnapshot(s)

	log.Printf("👤 玩家 %s 加入房间 %s", name, code)

	s.Broadcast(protocol.MustNewMessage(protocol.MsgGameData, protocol.GameDataPayload{
		Users:      users,
		MaxRounds:  maxRounds,
		Categories: categories,
	}))

	return s, nil
}

// GetSession 获取会话
func (rm *Registry) GetSession(code string) (*Session, error) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	s, exists := rm.sessions[code]
	if !exists {
		return nil, apperrors.ErrGameNotFound
	}
	return s, nil
}

// RemovePlayer 把玩家从其所在会话移除，用于主动离开和断线
// 幂等：玩家不在任何会话中时返回 nil 且无副作用
func (rm *Registry) RemovePlayer(playerID string) (*Session, *Player) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	for code, s := range rm.sessions {
		s.mu.Lock()
		idx := -1
		for i, u := range s.Users {
			if u.ID == playerID {
				idx = i
				break
			}
		}
		if idx == -1 {
			s.mu.Unlock()
			continue
		}

		player := s.Users[idx]
		s.Users = append(s.Users[:idx], s.Users[idx+1:]...)
		if player.Client != nil {
			player.Client.SetGame("")
		}

		empty := len(s.Users) == 0
		users := s.userInfosLocked()
		s.mu.Unlock()

		log.Printf("👋 玩家 %s 离开房间 %s", player.Name, code)

		if empty {
			// 空会话直接解散，轮次屏障不会再被求值
			s.cancelTimer()
			delete(rm.sessions, code)
			rm.deleteSnapshot(code)
			log.Printf("🏠 房间 %s 已解散", code)
			return s, player
		}

		rm.saveSnapshot(s)

		s.Broadcast(protocol.MustNewMessage(protocol.MsgGameData, protocol.GameDataPayload{
			Users: users,
		}))

		return s, player
	}

	return nil, nil
}

// cleanupLoop 定期清理空闲大厅
func (rm *Registry) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rm.cleanup()
	}
}

// cleanup 清理超时的大厅会话，进行中的对局不回收
func (rm *Registry) cleanup() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	now := time.Now()

	for code, s := range rm.sessions {
		s.mu.RLock()
		idle := !s.Started && now.Sub(s.CreatedAt) > rm.sessionTimeout
		s.mu.RUnlock()
		if !idle {
			continue
		}

		s.Broadcast(protocol.NewErrorMessage(protocol.ErrCodeGameNotFound))
		s.mu.Lock()
		for _, u := range s.Users {
			if u.Client != nil {
				u.Client.SetGame("")
			}
		}
		s.mu.Unlock()

		s.cancelTimer()
		delete(rm.sessions, code)
		rm.deleteSnapshot(code)
		log.Printf("🏠 房间 %s 空闲超时已清理", code)
	}
}

// saveSnapshot 异步保存会话快照，尽力而为
func (rm *Registry) saveSnapshot(s *Session) {
	if rm.store == nil {
		return
	}
	go func() { _ = rm.store.SaveGame(context.Background(), s.Code, s.ToGameData()) }()
}

func (rm *Registry) deleteSnapshot(code string) {
	if rm.store == nil {
		return
	}
	go func() { _ = rm.store.DeleteGame(context.Background(), code) }()
}
