package services

import (
  "context"
  "encoding/json"
  "fmt"
  "os"
  "strings"
  "time"

  "github.com/google/uuid"
  "github.com/redis/go-redis/v9"

  "github.com/yungbote/steelman-backend/internal/logger"
  "github.com/yungbote/steelman-backend/internal/types"
)

// ShareCache sits in front of the public share-by-id read. It is a pure
// accelerator: a nil ShareCache is valid and means every read hits Postgres.
type ShareCache interface {
  Get(ctx context.Context, debateID uuid.UUID) (*types.Debate, bool)
  Set(ctx context.Context, debate *types.Debate)
  Invalidate(ctx context.Context, debateID uuid.UUID)
}

type redisShareCache struct {
  log *logger.Logger
  rdb *redis.Client
  ttl time.Duration
}

func NewRedisShareCache(log *logger.Logger) (ShareCache, error) {
  addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
  if addr == "" {
    return nil, fmt.Errorf("missing REDIS_ADDR")
  }

  rdb := redis.NewClient(&redis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    return nil, fmt.Errorf("redis ping: %w", err)
  }

  return &redisShareCache{
    log: log.With("service", "RedisShareCache"),
    rdb: rdb,
    ttl: 5 * time.Minute,
  }, nil
}

func shareCacheKey(debateID uuid.UUID) string {
  return "share:debate:" + debateID.String()
}

func (sc *redisShareCache) Get(ctx context.Context, debateID uuid.UUID) (*types.Debate, bool) {
  raw, err := sc.rdb.Get(ctx, shareCacheKey(debateID)).Bytes()
  if err != nil {
    if err != redis.Nil {
      sc.log.Warn("Share cache read failed", "error", err)
    }
    return nil, false
  }
  var debate types.Debate
  if err := json.Unmarshal(raw, &debate); err != nil {
    sc.log.Warn("Share cache entry corrupt, dropping", "error", err)
    _ = sc.rdb.Del(ctx, shareCacheKey(debateID)).Err()
    return nil, false
  }
  return &debate, true
}

func (sc *redisShareCache) Set(ctx context.Context, debate *types.Debate) {
  if debate == nil {
    return
  }
  raw, err := json.Marshal(debate)
  if err != nil {
    return
  }
  if err := sc.rdb.Set(ctx, shareCacheKey(debate.ID), raw, sc.ttl).Err(); err != nil {
    sc.log.Warn("Share cache write failed", "error", err)
  }
}

func (sc *redisShareCache) Invalidate(ctx context.Context, debateID uuid.UUID) {
  if err := sc.rdb.Del(ctx, shareCacheKey(debateID)).Err(); err != nil {
    sc.log.Warn("Share cache invalidation failed", "error", err)
  }
}
