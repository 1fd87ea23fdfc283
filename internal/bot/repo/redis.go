package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sophist-bot/server/internal/bot/model"
	errx "github.com/sophist-bot/server/internal/core/error"
	logx "github.com/sophist-bot/server/pkg/logger"
)

// DefaultMaxMessages bounds a conversation's history when no explicit limit
// is configured.
const DefaultMaxMessages = 30

// RedisContextStore is the durable context-store variant: one Redis list per
// conversation at key "context:<id>", each element the JSON wire form of a
// HistoryEntry. It survives restarts; there is no TTL.
type RedisContextStore struct {
	rdb redis.Cmdable
	max int
}

func NewRedisContextStore(rdb redis.Cmdable, maxMessages int) *RedisContextStore {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	return &RedisContextStore{rdb: rdb, max: maxMessages}
}

func (s *RedisContextStore) contextKey(conversationID int64) string {
	return fmt.Sprintf("context:%d", conversationID)
}

// Append pushes the entry to the tail and trims the list to the newest max
// elements. Push and trim are not atomic; a lost trim leaves the list one
// over until the next append re-trims it.
func (s *RedisContextStore) Append(ctx context.Context, conversationID int64, entry model.HistoryEntry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		logx.Error().Err(err).Int64("conversationID", conversationID).Msg("failed to marshal history entry")
		return fmt.Errorf("marshal history entry: %w", err)
	}
	key := s.contextKey(conversationID)

	if err := s.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push history entry to redis")
		return errx.WrapRedis(err)
	}
	if err := s.rdb.LTrim(ctx, key, int64(-s.max), -1).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to trim context list")
		return errx.WrapRedis(err)
	}
	return nil
}

// Read returns up to max newest entries, oldest first. Elements that fail to
// decode are logged and skipped; the rest of the list is still returned.
func (s *RedisContextStore) Read(ctx context.Context, conversationID int64) ([]model.HistoryEntry, error) {
	key := s.contextKey(conversationID)

	rows, err := s.rdb.LRange(ctx, key, int64(-s.max), -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load context from redis")
		return nil, errx.WrapRedis(err)
	}

	entries := make([]model.HistoryEntry, 0, len(rows))
	for i, row := range rows {
		var e model.HistoryEntry
		if err := json.Unmarshal([]byte(row), &e); err != nil {
			logx.Error().Err(err).Str("key", key).Int("index", i).Msg("skipping corrupt history entry")
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *RedisContextStore) PopLast(ctx context.Context, conversationID int64) error {
	key := s.contextKey(conversationID)
	if err := s.rdb.RPop(ctx, key).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to pop newest history entry")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.ContextStore = (*RedisContextStore)(nil)
