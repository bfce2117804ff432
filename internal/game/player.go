package game

import (
	"encoding/json"

	"github.com/palemoky/letter-rush/internal/types"
)

// Player 会话中的玩家
// Responses/Scores/Ready 均以轮次编号为键
type Player struct {
	ID          string
	Name        string
	AvatarIndex int
	Responses   map[int]json.RawMessage
	Scores      map[int]int
	Ready       map[int]bool

	Client types.ClientInterface
}

func newPlayer(client types.ClientInterface, name string, avatarIndex int) *Player {
	return &Player{
		ID:          client.GetID(),
		Name:        name,
		AvatarIndex: avatarIndex,
		Responses:   make(map[int]json.RawMessage),
		Scores:      make(map[int]int),
		Ready:       make(map[int]bool),
		Client:      client,
	}
}

// clearRounds 清空所有按轮次记录的数据（再来一局时保留身份）
func (p *Player) clearRounds() {
	p.Responses = make(map[int]json.RawMessage)
	p.Scores = make(map[int]int)
	p.Ready = make(map[int]bool)
}

// TotalScore 累加所有已记录轮次的分数
func (p *Player) TotalScore() int {
	total := 0
	for _, score := range p.Scores {
		total += score
	}
	return total
}
