package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"chatrelay/internal/chatlog"
	"chatrelay/internal/config"
	"chatrelay/internal/history"
	"chatrelay/internal/llm"
	"chatrelay/internal/scheduler"
	"chatrelay/internal/server"
	"chatrelay/internal/store"
	"chatrelay/internal/users"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	userTbl, err := store.Open[users.User](cfg.UsersFilePath)
	if err != nil {
		logger.Fatal("failed to open users table", zap.Error(err), zap.String("path", cfg.UsersFilePath))
	}
	turnTbl, err := store.Open[chatlog.Turn](cfg.TurnsFilePath)
	if err != nil {
		logger.Fatal("failed to open turns table", zap.Error(err), zap.String("path", cfg.TurnsFilePath))
	}
	if cfg.StrictStore {
		userTbl.SetLenient(false)
		turnTbl.SetLenient(false)
	}

	factory := &llm.Factory{
		Mock:             cfg.MockLLM,
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		OpenAIModel:      cfg.OpenAIModel,
		Temperature:      cfg.Temperature,
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
	}
	client, err := factory.CreateClient(cfg.LLMProvider)
	if err != nil {
		logger.Fatal("failed to create llm client", zap.Error(err))
	}

	turns := chatlog.NewLog(turnTbl)
	assembler := history.NewAssembler(turns, cfg.HistoryPairs, readSystemPrompt(logger, cfg.SystemPromptPath))

	backups := scheduler.New(logger, cfg.BackupDir, cfg.UsersFilePath, cfg.TurnsFilePath)
	if err := backups.Start(cfg.BackupCron); err != nil {
		logger.Fatal("failed to start backup scheduler", zap.Error(err))
	}
	defer backups.Stop()

	srv := server.New(cfg, users.NewDirectory(userTbl), turns, assembler, client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func readSystemPrompt(logger *zap.Logger, path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("system prompt file not readable, using built-in default",
			zap.String("path", path), zap.Error(err))
		return ""
	}
	return string(data)
}
