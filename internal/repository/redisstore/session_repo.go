package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-portfolio-site/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "portfolio:session:"

type sessionRepo struct {
	client *redis.Client
}

// NewSessionRepository stores visitor sessions as JSON values with a TTL.
func NewSessionRepository(client *redis.Client) domain.SessionRepository {
	return &sessionRepo{client: client}
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*domain.VisitorSession, error) {
	raw, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session domain.VisitorSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepo) Save(ctx context.Context, session *domain.VisitorSession, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+session.ID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
