package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"linkup/internal/config"
)

const (
	keyPrefix      = "linkup:presence:user:"
	onlineUsersKey = "linkup:online:users"

	// Twice the client heartbeat period; a silent client drops to offline.
	presenceTTL = 2 * time.Minute
)

type Store struct {
	client *redis.Client
}

func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// MarkOnline records the user as present, with a TTL so stale sessions
// expire on their own.
func (s *Store) MarkOnline(ctx context.Context, userID string) error {
	key := keyPrefix + userID
	if err := s.client.Set(ctx, key, time.Now().Format(time.RFC3339), presenceTTL).Err(); err != nil {
		return fmt.Errorf("failed to set presence: %w", err)
	}
	if err := s.client.SAdd(ctx, onlineUsersKey, userID).Err(); err != nil {
		return fmt.Errorf("failed to update online set: %w", err)
	}
	return nil
}

func (s *Store) MarkOffline(ctx context.Context, userID string) error {
	key := keyPrefix + userID
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete presence: %w", err)
	}
	if err := s.client.SRem(ctx, onlineUsersKey, userID).Err(); err != nil {
		return fmt.Errorf("failed to update online set: %w", err)
	}
	return nil
}

// Refresh extends the TTL for a live session without rewriting the set.
func (s *Store) Refresh(ctx context.Context, userID string) error {
	ok, err := s.client.Expire(ctx, keyPrefix+userID, presenceTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to refresh presence: %w", err)
	}
	if !ok {
		return fmt.Errorf("user %s is not online", userID)
	}
	return nil
}

func (s *Store) IsOnline(ctx context.Context, userID string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+userID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check presence: %w", err)
	}
	return n > 0, nil
}

// OnlineUsers lists user ids in the online set, pruning entries whose
// presence key already expired.
func (s *Store) OnlineUsers(ctx context.Context) ([]string, error) {
	members, err := s.client.SMembers(ctx, onlineUsersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list online users: %w", err)
	}

	online := make([]string, 0, len(members))
	for _, userID := range members {
		n, err := s.client.Exists(ctx, keyPrefix+userID).Result()
		if err != nil {
			continue
		}
		if n == 0 {
			s.client.SRem(ctx, onlineUsersKey, userID)
			continue
		}
		online = append(online, userID)
	}
	return online, nil
}
