package pool

import (
	"math/rand/v2"

	"github.com/palemoky/letter-rush/internal/apperrors"
)

// Pool 有限令牌池，随机不放回抽取
// 用于头像槽位（每局创建时重置）和字母（每轮重置）
type Pool[T any] struct {
	tokens []T
}

// New 创建令牌池
func New[T any](tokens []T) *Pool[T] {
	p := &Pool[T]{}
	p.Reset(tokens)
	return p
}

// Reset 用给定令牌替换当前可用集合
func (p *Pool[T]) Reset(tokens []T) {
	p.tokens = make([]T, len(tokens))
	copy(p.tokens, tokens)
}

// DrawRandom 随机抽取并移除一个令牌
// 用末位交换删除保证 O(1)，已抽出的令牌在下次 Reset 前不会再出现
func (p *Pool[T]) DrawRandom() (T, error) {
	var zero T
	if len(p.tokens) == 0 {
		return zero, apperrors.ErrPoolExhausted
	}

	i := rand.IntN(len(p.tokens))
	token := p.tokens[i]
	last := len(p.tokens) - 1
	p.tokens[i] = p.tokens[last]
	p.tokens = p.tokens[:last]
	return token, nil
}

// Remaining 返回剩余令牌数量
func (p *Pool[T]) Remaining() int {
	return len(p.tokens)
}

// Avatars 返回完整的头像槽位集合 1..n
func Avatars(n int) []int {
	avatars := make([]int, n)
	for i := range avatars {
		avatars[i] = i + 1
	}
	return avatars
}

// Alphabet 返回完整的 26 个大写字母
func Alphabet() []string {
	letters := make([]string, 26)
	for i := range letters {
		letters[i] = string(rune('A' + i))
	}
	return letters
}
