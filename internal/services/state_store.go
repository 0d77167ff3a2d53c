package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"leadreach/outreach-assistant/internal/models"
)

const (
	stateKeyPrefix = "outreach:state:"
	lockKeyPrefix  = "outreach:lock:"
)

// SearchStateStore keeps the last completed search per session between the
// search step and the results/send steps.
type SearchStateStore interface {
	Save(ctx context.Context, sessionID string, result *models.SearchResult) error
	Load(ctx context.Context, sessionID string) (*models.SearchResult, error)
	// Lock serialises searches of one session. The returned func releases it.
	Lock(ctx context.Context, sessionID string) (func(), error)
}

type redisStateStore struct {
	rdb      *redis.Client
	stateTTL time.Duration
	lockTTL  time.Duration
}

func NewRedisStateStore(rdb *redis.Client, stateTTL, lockTTL time.Duration) SearchStateStore {
	return &redisStateStore{
		rdb:      rdb,
		stateTTL: stateTTL,
		lockTTL:  lockTTL,
	}
}

// Save implements SearchStateStore.
func (s *redisStateStore) Save(ctx context.Context, sessionID string, result *models.SearchResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode search state: %w", err)
	}
	if err := s.rdb.Set(ctx, stateKeyPrefix+sessionID, raw, s.stateTTL).Err(); err != nil {
		return fmt.Errorf("failed to store search state: %w", err)
	}
	return nil
}

// Load implements SearchStateStore. A stored result without idea, candidates
// or drafts counts as missing.
func (s *redisStateStore) Load(ctx context.Context, sessionID string) (*models.SearchResult, error) {
	raw, err := s.rdb.Get(ctx, stateKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMissingState
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read search state: %w", err)
	}

	var result models.SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode search state: %w", err)
	}
	if !result.Complete() {
		return nil, ErrMissingState
	}
	return &result, nil
}

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock implements SearchStateStore.
func (s *redisStateStore) Lock(ctx context.Context, sessionID string) (func(), error) {
	key := lockKeyPrefix + sessionID
	token := uuid.NewString()

	ok, err := s.rdb.SetNX(ctx, key, token, s.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire search lock: %w", err)
	}
	if !ok {
		return nil, ErrSearchInProgress
	}

	return func() {
		// The request context may already be cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = unlockScript.Run(ctx, s.rdb, []string{key}, token).Err()
	}, nil
}
