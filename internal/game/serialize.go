package game

import (
	"encoding/json"

	"github.com/palemoky/letter-rush/internal/protocol"
	"github.com/palemoky/letter-rush/internal/server/storage"
)

// userInfoLocked 生成单个玩家的传输对象，按轮次的映射做深拷贝
func (s *Session) userInfoLocked(p *Player) protocol.UserInfo {
	info := protocol.UserInfo{
		ID:          p.ID,
		Name:        p.Name,
		AvatarIndex: p.AvatarIndex,
		Responses:   make(map[int]json.RawMessage, len(p.Responses)),
		Scores:      make(map[int]int, len(p.Scores)),
		Ready:       make(map[int]bool, len(p.Ready)),
	}
	for round, r := range p.Responses {
		info.Responses[round] = r
	}
	for round, score := range p.Scores {
		info.Scores[round] = score
	}
	for round, ready := range p.Ready {
		info.Ready[round] = ready
	}
	return info
}

func (s *Session) userInfosLocked() []protocol.UserInfo {
	infos := make([]protocol.UserInfo, 0, len(s.Users))
	for _, u := range s.Users {
		infos = append(infos, s.userInfoLocked(u))
	}
	return infos
}

// UserInfos 返回按加入顺序排列的玩家信息
func (s *Session) UserInfos() []protocol.UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userInfosLocked()
}

// snapshotLocked 生成完整状态快照
func (s *Session) snapshotLocked() protocol.GameState {
	return protocol.GameState{
		Code:              s.Code,
		Users:             s.userInfosLocked(),
		Started:           s.Started,
		CurrentRound:      s.CurrentRound,
		MaxRounds:         s.MaxRounds,
		Categories:        s.Categories,
		ScoringType:       s.ScoringType,
		CurrentAlphabet:   s.CurrentAlphabet,
		CurrentTimerValue: s.CurrentTimerValue,
	}
}

// Snapshot 返回完整状态快照
func (s *Session) Snapshot() protocol.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// ToGameData 将会话转换为可序列化的存储快照
func (s *Session) ToGameData() *storage.GameData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := &storage.GameData{
		Code:            s.Code,
		Started:         s.Started,
		CurrentRound:    s.CurrentRound,
		MaxRounds:       s.MaxRounds,
		Categories:      s.Categories,
		ScoringType:     s.ScoringType,
		CurrentAlphabet: s.CurrentAlphabet,
		CreatedAt:       s.CreatedAt.Unix(),
		Users:           make([]storage.UserData, 0, len(s.Users)),
	}

	for _, u := range s.Users {
		scores := make(map[int]int, len(u.Scores))
		for round, score := range u.Scores {
			scores[round] = score
		}
		data.Users = append(data.Users, storage.UserData{
			ID:          u.ID,
			Name:        u.Name,
			AvatarIndex: u.AvatarIndex,
			Scores:      scores,
		})
	}

	return data
}
