//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGameStore 实现 types.GameStore 的 mock
type MockGameStore struct {
	mock.Mock
}

func (m *MockGameStore) SaveGame(ctx context.Context, code string, snapshot any) error {
	args := m.Called(ctx, code, snapshot)
	return args.Error(0)
}

func (m *MockGameStore) DeleteGame(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}
