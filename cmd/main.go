package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gojobot/config"
	"gojobot/internal/barcode"
	"gojobot/internal/handler"
	"gojobot/internal/repository"
	"gojobot/internal/stats"
	"gojobot/traits/database"
	"gojobot/traits/logger"

	"github.com/go-telegram/bot"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	zapLogger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		zapLogger.Error("error init config", zap.Error(err))
		return
	}

	// Validate configuration; a missing bot token refuses startup
	if err := cfg.ValidateConfig(); err != nil {
		zapLogger.Error("invalid configuration", zap.Error(err))
		return
	}

	zapLogger.Info("Starting GOJO clearance bot",
		zap.String("environment", cfg.Environment),
		zap.String("session_backend", cfg.SessionBackend),
		zap.String("port", cfg.Port),
	)

	admins := cfg.ParseAdminIDs(zapLogger)
	if len(admins) > 0 {
		zapLogger.Info("Admin IDs configured", zap.Int("count", len(admins)))
	} else {
		zapLogger.Info("No admin IDs configured (ADMIN_IDS is empty)")
	}

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the session store backend
	var sessions repository.SessionRepository
	switch cfg.SessionBackend {
	case config.BackendSQLite:
		db, err := database.InitDatabase(cfg, zapLogger)
		if err != nil {
			zapLogger.Error("failed to initialize database", zap.Error(err))
			return
		}
		defer db.Close()

		if err := database.CreateTables(db, zapLogger); err != nil {
			zapLogger.Error("failed to create tables", zap.Error(err))
			return
		}
		sessions = repository.NewSQLiteSessionRepository(db, zapLogger)

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			zapLogger.Error("failed to connect to redis", zap.Error(err))
			return
		}
		defer client.Close()
		sessions = repository.NewRedisSessionRepository(client, zapLogger)

	default:
		sessions = repository.NewMemorySessionRepository()
	}

	counter := stats.NewScanCounter()
	feed := handler.NewScanFeed(ctx, zapLogger)
	recognizer := barcode.NewZXingRecognizer(zapLogger)

	// Create handler with its collaborators
	handl := handler.NewHandler(cfg, zapLogger, sessions, admins, counter, recognizer, feed)

	// Create bot instance
	opts := []bot.Option{
		bot.WithDefaultHandler(handl.DefaultHandler),
	}

	b, err := bot.New(cfg.Token, opts...)
	if err != nil {
		zapLogger.Error("error creating bot", zap.Error(err))
		return
	}

	// Set up graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-stop
		zapLogger.Info("Shutdown signal received")
		cancel()
	}()

	// Start admin web server
	go handl.StartWebServer(ctx)
	zapLogger.Info("Admin web server started", zap.String("address", cfg.GetServerAddress()))

	// Start bot
	zapLogger.Info("Bot started successfully")
	b.Start(ctx)

	zapLogger.Info("Application stopped successfully")
}
