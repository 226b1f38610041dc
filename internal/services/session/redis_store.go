package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/papana-farm/metdash/internal/models"
)

const keyPrefix = "metdash:session:"

type RedisStore struct {
	client     *redis.Client
	logger     zerolog.Logger
	expiration time.Duration
}

func NewRedisStore(
	client *redis.Client,
	logger zerolog.Logger,
	expiration time.Duration,
) *RedisStore {
	return &RedisStore{
		client:     client,
		logger:     logger.With().Str("component", "RedisSessionStore").Logger(),
		expiration: expiration,
	}
}

func (s *RedisStore) Set(ctx context.Context, sess models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.logger.Debug().Str("session", sess.ID).Msg("saving session")
	return s.client.Set(ctx, keyPrefix+sess.ID, data, s.expiration).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (models.Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, err
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return models.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return sess, nil
}
