package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	gameKeyPrefix = "game:"

	// 会话快照过期时间
	gameExpiration = 2 * time.Hour
)

// GameData 会话快照（用于 Redis 序列化）
type GameData struct {
	Code            string     `json:"code"`
	Started         bool       `json:"started"`
	CurrentRound    int        `json:"current_round"`
	MaxRounds       int        `json:"max_rounds"`
	Categories      []string   `json:"categories"`
	ScoringType     string     `json:"scoring_type"`
	CurrentAlphabet string     `json:"current_alphabet"`
	Users           []UserData `json:"users"`
	CreatedAt       int64      `json:"created_at"`
}

// UserData 玩家快照
type UserData struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	AvatarIndex int         `json:"avatar_index"`
	Scores      map[int]int `json:"scores"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveGame 保存会话快照到 Redis
func (rs *RedisStore) SaveGame(ctx context.Context, code string, snapshot any) error {
	if snapshot == nil {
		return nil
	}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("序列化会话快照失败: %w", err)
	}

	key := gameKeyPrefix + code
	return rs.client.Set(ctx, key, jsonData, gameExpiration).Err()
}

// LoadGame 从 Redis 加载会话快照（仅返回数据，需要外部重建）
func (rs *RedisStore) LoadGame(ctx context.Context, code string) (*GameData, error) {
	key := gameKeyPrefix + code
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 快照不存在
		}
		return nil, err
	}

	var gameData GameData
	if err := json.Unmarshal(data, &gameData); err != nil {
		return nil, fmt.Errorf("反序列化会话快照失败: %w", err)
	}

	return &gameData, nil
}

// DeleteGame 从 Redis 删除会话快照
func (rs *RedisStore) DeleteGame(ctx context.Context, code string) error {
	key := gameKeyPrefix + code
	return rs.client.Del(ctx, key).Err()
}

// GetAllGameCodes 获取所有快照的房间码
func (rs *RedisStore) GetAllGameCodes(ctx context.Context) ([]string, error) {
	keys, err := rs.client.Keys(ctx, gameKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	codes := make([]string, len(keys))
	for i, key := range keys {
		codes[i] = key[len(gameKeyPrefix):]
	}
	return codes, nil
}
