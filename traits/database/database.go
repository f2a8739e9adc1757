package database

import (
	"database/sql"
	"os"

	"gojobot/config"

	"go.uber.org/zap"
)

// InitDatabase initializes the SQLite database used by the sqlite
// session backend.
func InitDatabase(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
		return nil, err
	}

	// Open database connection
	db, err := sql.Open("sqlite3", cfg.GetDatabasePath()+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Database initialized successfully",
		zap.String("path", cfg.GetDatabasePath()),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)

	return db, nil
}

// CreateTables creates the sessions table with supporting index and trigger
func CreateTables(db *sql.DB, logger *zap.Logger) error {
	sessionsTable := `
		CREATE TABLE IF NOT EXISTS sessions (
			telegram_id INTEGER PRIMARY KEY,
			language TEXT NOT NULL DEFAULT 'bi' CHECK (language IN ('en', 'am', 'bi')),
			preferred_store TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`

	tables := []struct {
		name string
		sql  string
	}{
		{"sessions", sessionsTable},
	}

	for _, table := range tables {
		var tableCount int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table.name).Scan(&tableCount)
		if err != nil {
			logger.Error("Failed to check table existence", zap.String("table", table.name), zap.Error(err))
			return err
		}

		if tableCount == 0 {
			if _, err := db.Exec(table.sql); err != nil {
				logger.Error("Failed to create table", zap.String("table", table.name), zap.Error(err))
				return err
			}
			logger.Info("Table created successfully", zap.String("table", table.name))
		} else {
			logger.Info("Table exists", zap.String("table", table.name))
		}
	}

	indexes := []struct {
		name string
		sql  string
	}{
		{
			name: "idx_sessions_updated_at",
			sql:  "CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);",
		},
	}

	for _, index := range indexes {
		if _, err := db.Exec(index.sql); err != nil {
			logger.Warn("Failed to create index",
				zap.String("index", index.name),
				zap.Error(err),
			)
		} else {
			logger.Info("Index created/verified", zap.String("index", index.name))
		}
	}

	triggers := []struct {
		name string
		sql  string
	}{
		{
			name: "trigger_sessions_updated_at",
			sql: `
				CREATE TRIGGER IF NOT EXISTS trigger_sessions_updated_at
				AFTER UPDATE ON sessions
				BEGIN
					UPDATE sessions SET updated_at = CURRENT_TIMESTAMP WHERE telegram_id = NEW.telegram_id;
				END;`,
		},
	}

	for _, trigger := range triggers {
		if _, err := db.Exec(trigger.sql); err != nil {
			logger.Warn("Failed to create trigger",
				zap.String("trigger", trigger.name),
				zap.Error(err))
		} else {
			logger.Info("Trigger created/verified", zap.String("trigger", trigger.name))
		}
	}

	logger.Info("Database schema created successfully")
	return nil
}
