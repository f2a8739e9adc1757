package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gojobot/internal/domain"
	"gojobot/internal/i18n"

	"go.uber.org/zap"
)

// SQLiteSessionRepository persists sessions in the sqlite database so
// user preferences survive restarts.
type SQLiteSessionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLiteSessionRepository(db *sql.DB, logger *zap.Logger) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SQLiteSessionRepository) Get(ctx context.Context, telegramID int64) (*domain.Session, error) {
	query := `
		SELECT telegram_id, language, preferred_store, created_at, updated_at
		FROM sessions
		WHERE telegram_id = ?`

	session := &domain.Session{}
	var language string

	err := r.db.QueryRowContext(ctx, query, telegramID).Scan(
		&session.TelegramID, &language, &session.PreferredStore,
		&session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get session", zap.Error(err), zap.Int64("telegram_id", telegramID))
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Language = i18n.Lang(language)
	if !session.Language.Valid() {
		session.Language = i18n.Default
	}
	return session, nil
}

func (r *SQLiteSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (telegram_id, language, preferred_store, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(telegram_id) DO UPDATE SET
			language = excluded.language,
			preferred_store = excluded.preferred_store,
			updated_at = excluded.updated_at`

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		session.TelegramID, string(session.Language), session.PreferredStore,
		session.CreatedAt, now,
	)
	if err != nil {
		r.logger.Error("Failed to save session", zap.Error(err), zap.Int64("telegram_id", session.TelegramID))
		return fmt.Errorf("failed to save session: %w", err)
	}

	session.UpdatedAt = now
	return nil
}
