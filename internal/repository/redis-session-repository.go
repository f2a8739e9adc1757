package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gojobot/internal/domain"
	"gojobot/internal/i18n"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisSessionRepository shares sessions across bot instances. Sessions
// are stored as JSON under session:<telegram_id>, without expiry.
type RedisSessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisSessionRepository(client *redis.Client, logger *zap.Logger) *RedisSessionRepository {
	return &RedisSessionRepository{
		client: client,
		logger: logger,
	}
}

func sessionKey(telegramID int64) string {
	return fmt.Sprintf("session:%d", telegramID)
}

func (r *RedisSessionRepository) Get(ctx context.Context, telegramID int64) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(telegramID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Failed to get session", zap.Error(err), zap.Int64("telegram_id", telegramID))
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session, err := decodeSession(data)
	if err != nil {
		r.logger.Error("Failed to decode session", zap.Error(err), zap.Int64("telegram_id", telegramID))
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return session, nil
}

// decodeSession unmarshals a stored session; a hand-edited or legacy key
// with an unknown language mode falls back to the default.
func decodeSession(data []byte) (*domain.Session, error) {
	session := &domain.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, err
	}
	if !session.Language.Valid() {
		session.Language = i18n.Default
	}
	return session, nil
}

func (r *RedisSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.TelegramID), data, 0).Err(); err != nil {
		r.logger.Error("Failed to save session", zap.Error(err), zap.Int64("telegram_id", session.TelegramID))
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
