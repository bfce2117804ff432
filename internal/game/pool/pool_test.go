package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/letter-rush/internal/apperrors"
)

func TestPool_DrawAllDistinct(t *testing.T) {
	p := New(Avatars(10))

	seen := make(map[int]bool)
	for i := 0; i < 10; i++ {
		v, err := p.DrawRandom()
		require.NoError(t, err)
		assert.False(t, seen[v], "avatar %d drawn twice", v)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 10)
		seen[v] = true
	}
	assert.Equal(t, 0, p.Remaining())
}

func TestPool_Exhausted(t *testing.T) {
	p := New([]int{1})

	_, err := p.DrawRandom()
	require.NoError(t, err)

	_, err = p.DrawRandom()
	assert.ErrorIs(t, err, apperrors.ErrPoolExhausted)
}

func TestPool_ResetRestoresTokens(t *testing.T) {
	p := New(Alphabet())
	assert.Equal(t, 26, p.Remaining())

	for i := 0; i < 26; i++ {
		_, err := p.DrawRandom()
		require.NoError(t, err)
	}
	assert.Equal(t, 0, p.Remaining())

	// A per-round reset makes every letter available again
	p.Reset(Alphabet())
	assert.Equal(t, 26, p.Remaining())

	seen := make(map[string]bool)
	for i := 0; i < 26; i++ {
		letter, err := p.DrawRandom()
		require.NoError(t, err)
		assert.False(t, seen[letter], "letter %s drawn twice in one draw-set", letter)
		seen[letter] = true
	}
}

func TestPool_ResetCopiesInput(t *testing.T) {
	tokens := []int{1, 2, 3}
	p := New(tokens)

	// Mutating the caller's slice must not affect the pool
	tokens[0] = 99
	remaining := map[int]bool{}
	for i := 0; i < 3; i++ {
		v, err := p.DrawRandom()
		require.NoError(t, err)
		remaining[v] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, remaining)
}

func TestAlphabet(t *testing.T) {
	letters := Alphabet()
	require.Len(t, letters, 26)
	assert.Equal(t, "A", letters[0])
	assert.Equal(t, "Z", letters[25])
}
