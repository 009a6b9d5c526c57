package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/stockroom/backoffice/application/port/inbound"
	"github.com/stockroom/backoffice/infrastructure/service/logger"
)

// redisRateLimitService keeps attempt counters and blocks in Redis
type redisRateLimitService struct {
	redisClient *redis.Client
	logger      logger.Logger
}

type RateLimitConfig struct {
	Enabled  bool
	RedisURL string
}

// NewRateLimitService returns a Redis-backed limiter, or one that allows
// everything when rate limiting is disabled.
func NewRateLimitService(config RateLimitConfig, log logger.Logger) (inbound.RateLimitService, error) {
	if !config.Enabled {
		log.Info(context.Background(), "Rate limiting disabled", nil)
		return NewNoopRateLimitService(), nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisClient := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRateLimitService{
		redisClient: redisClient,
		logger:      log.WithFields(map[string]interface{}{"component": "ratelimit"}),
	}, nil
}

// CheckLimit reports whether key is still under limit
func (s *redisRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	currentCount, err := s.GetAttempts(ctx, key)
	if err != nil {
		return false, err
	}

	underLimit := currentCount < limit
	s.logger.Debug(ctx, "Rate limit check", map[string]interface{}{
		"key":         key,
		"current":     currentCount,
		"limit":       limit,
		"under_limit": underLimit,
	})

	return underLimit, nil
}

// Increment bumps the counter for key; the window starts with the first attempt
func (s *redisRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	count, err := s.redisClient.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Error(ctx, "Failed to increment rate limit counter", err, map[string]interface{}{"key": key})
		return fmt.Errorf("failed to increment rate limit: %w", err)
	}
	if count == 1 {
		if err := s.redisClient.Expire(ctx, key, window).Err(); err != nil {
			return fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	s.logger.Debug(ctx, "Rate limit incremented", map[string]interface{}{
		"key":    key,
		"count":  count,
		"window": window.String(),
	})
	return nil
}

// Block marks key as blocked for duration
func (s *redisRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	blockKey := fmt.Sprintf("blocked:%s", key)

	blockData := map[string]interface{}{
		"reason":         reason,
		"blocked_at":     time.Now().Unix(),
		"duration":       duration.Seconds(),
		"correlation_id": logger.CorrelationIDFromContext(ctx),
	}

	pipeline := s.redisClient.TxPipeline()
	pipeline.HSet(ctx, blockKey, blockData)
	pipeline.Expire(ctx, blockKey, duration)

	if _, err := pipeline.Exec(ctx); err != nil {
		s.logger.Error(ctx, "Failed to block key", err, map[string]interface{}{"key": key})
		return fmt.Errorf("failed to block key: %w", err)
	}

	s.logger.Warn(ctx, "Key blocked due to rate limit exceeded", map[string]interface{}{
		"key":      key,
		"duration": duration.String(),
		"reason":   reason,
	})
	return nil
}

func (s *redisRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, fmt.Sprintf("blocked:%s", key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check block status: %w", err)
	}
	return exists > 0, nil
}

func (s *redisRateLimitService) GetAttempts(ctx context.Context, key string) (int, error) {
	count, err := s.redisClient.Get(ctx, key).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get attempts: %w", err)
	}
	return count, nil
}

// noopRateLimitService allows every request
type noopRateLimitService struct{}

func NewNoopRateLimitService() inbound.RateLimitService {
	return &noopRateLimitService{}
}

func (n *noopRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func (n *noopRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	return nil
}

func (n *noopRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	return nil
}

func (n *noopRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (n *noopRateLimitService) GetAttempts(ctx context.Context, key string) (int, error) {
	return 0, nil
}
