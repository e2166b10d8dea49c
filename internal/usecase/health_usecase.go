package usecase

import (
	"context"

	"go-portfolio-site/pkg/logger"
	"go-portfolio-site/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	redis *goredis.Client
}

// NewHealthUsecase reports on the session backend. client may be nil.
func NewHealthUsecase(client *goredis.Client) HealthUsecase {
	return &healthUsecase{redis: client}
}

// Check always succeeds: a Redis outage degrades to in-memory sessions.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":   "ok",
		"sessions": "memory",
	}
	if u.redis == nil {
		return status
	}

	status["sessions"] = "redis"
	if err := redis.HealthCheck(ctx, u.redis); err != nil {
		logger.Log.Warn("Redis health check failed", "error", err)
		status["redis"] = "unavailable"
		return status
	}
	status["redis"] = "ok"
	return status
}
