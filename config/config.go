package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Session backends selectable via SESSION_BACKEND.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config contains application configuration parameters
type Config struct {
	// Web server configuration
	Port         string        `json:"port"`
	Host         string        `json:"host"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`

	// Telegram Bot configuration
	Token       string `json:"token"`
	AdminIDsRaw string `json:"admin_ids"`
	AdminToken  string `json:"admin_token"`

	// Session storage configuration
	SessionBackend  string        `json:"session_backend"`
	DBName          string        `json:"db_name"`
	DBPath          string        `json:"db_path"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	RedisAddr       string        `json:"redis_addr"`
	RedisPassword   string        `json:"redis_password"`
	RedisDB         int           `json:"redis_db"`

	// App configuration
	Environment string `json:"environment"` // development, production
	LogLevel    string `json:"log_level"`   // debug, info, warn, error
}

// NewConfig creates and returns a new configuration instance
func NewConfig() (*Config, error) {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg := &Config{
		// Server defaults
		Port:         ":8081",
		Host:         "0.0.0.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,

		// Session storage defaults
		SessionBackend:  BackendMemory,
		DBName:          "gojobot.db",
		DBPath:          "./data/",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		RedisAddr:       "localhost:6379",
		RedisDB:         0,

		// App defaults
		Environment: "development",
		LogLevel:    "info",
	}

	// Override with environment variables if set
	if port := os.Getenv("PORT"); port != "" {
		if port[0] != ':' {
			cfg.Port = ":" + port
		} else {
			cfg.Port = port
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		cfg.Host = host
	}

	if token := os.Getenv("BOT_TOKEN"); token != "" {
		cfg.Token = token
	}

	if adminIDs := os.Getenv("ADMIN_IDS"); adminIDs != "" {
		cfg.AdminIDsRaw = adminIDs
	}

	if adminToken := os.Getenv("ADMIN_TOKEN"); adminToken != "" {
		cfg.AdminToken = adminToken
	}

	if backend := os.Getenv("SESSION_BACKEND"); backend != "" {
		cfg.SessionBackend = strings.ToLower(backend)
	}

	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		cfg.DBName = dbName
	}

	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cfg.RedisAddr = redisAddr
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.RedisPassword = redisPassword
	}

	if env := os.Getenv("ENVIRONMENT"); env != "" {
		cfg.Environment = env
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Parse numeric environment variables
	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			cfg.RedisDB = db
		}
	}

	if maxOpenConns := os.Getenv("DB_MAX_OPEN_CONNS"); maxOpenConns != "" {
		if conns, err := strconv.Atoi(maxOpenConns); err == nil {
			cfg.MaxOpenConns = conns
		}
	}

	if maxIdleConns := os.Getenv("DB_MAX_IDLE_CONNS"); maxIdleConns != "" {
		if conns, err := strconv.Atoi(maxIdleConns); err == nil {
			cfg.MaxIdleConns = conns
		}
	}

	// Parse duration environment variables
	if readTimeout := os.Getenv("READ_TIMEOUT"); readTimeout != "" {
		if timeout, err := time.ParseDuration(readTimeout); err == nil {
			cfg.ReadTimeout = timeout
		}
	}

	if writeTimeout := os.Getenv("WRITE_TIMEOUT"); writeTimeout != "" {
		if timeout, err := time.ParseDuration(writeTimeout); err == nil {
			cfg.WriteTimeout = timeout
		}
	}

	if idleTimeout := os.Getenv("IDLE_TIMEOUT"); idleTimeout != "" {
		if timeout, err := time.ParseDuration(idleTimeout); err == nil {
			cfg.IdleTimeout = timeout
		}
	}

	if connMaxLifetime := os.Getenv("DB_CONN_MAX_LIFETIME"); connMaxLifetime != "" {
		if lifetime, err := time.ParseDuration(connMaxLifetime); err == nil {
			cfg.ConnMaxLifetime = lifetime
		}
	}

	return cfg, nil
}

// ParseAdminIDs parses the comma-separated ADMIN_IDS value into a set of
// Telegram user IDs. Malformed entries are skipped with a warning, they
// never prevent startup.
func (c *Config) ParseAdminIDs(logger *zap.Logger) map[int64]struct{} {
	admins := make(map[int64]struct{})
	for _, piece := range strings.Split(c.AdminIDsRaw, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		id, err := strconv.ParseInt(piece, 10, 64)
		if err != nil {
			logger.Warn("Skipping invalid ADMIN_IDS entry", zap.String("entry", piece))
			continue
		}
		admins[id] = struct{}{}
	}
	return admins
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return c.DBPath + c.DBName
}

// GetServerAddress returns the web server address
func (c *Config) GetServerAddress() string {
	return c.Host + c.Port
}

// ValidateConfig validates the configuration
func (c *Config) ValidateConfig() error {
	if c.Token == "" {
		return fmt.Errorf("telegram bot token is required (set BOT_TOKEN)")
	}

	switch c.SessionBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}

	if c.SessionBackend == BackendSQLite && c.DBName == "" {
		return fmt.Errorf("database name is required for the sqlite session backend")
	}

	if c.SessionBackend == BackendRedis && c.RedisAddr == "" {
		return fmt.Errorf("redis address is required for the redis session backend")
	}

	return nil
}
