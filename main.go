package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/sophist-bot/server/internal/bot/llm"
	"github.com/sophist-bot/server/internal/bot/model"
	"github.com/sophist-bot/server/internal/bot/orchestrator"
	"github.com/sophist-bot/server/internal/bot/prompt"
	"github.com/sophist-bot/server/internal/bot/repo"
	"github.com/sophist-bot/server/internal/bot/trigger"
	"github.com/sophist-bot/server/internal/core"
	"github.com/sophist-bot/server/internal/gateway/telegram"
	logx "github.com/sophist-bot/server/pkg/logger"
	pkgredis "github.com/sophist-bot/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the bot, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// LLM provider
	APIKey string `envconfig:"API_KEY" required:"true"`

	// Infrastructure
	Redis pkgredis.Config

	// Bot configs
	Telegram   model.TelegramConfig
	Context    model.ContextConfig
	Trigger    model.TriggerConfig
	Generation model.GenerationConfig
}

func main() {
	if err := run(); err != nil {
		logx.Critical(err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file for local runs; absence is fine.
	_ = godotenv.Load(".env")

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("process environment config: %w", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	store, closeStore, err := buildStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator, err := llm.NewGenerator(ctx, cfg.APIKey, cfg.Generation)
	if err != nil {
		return fmt.Errorf("initialise language service: %w", err)
	}

	client := telegram.NewClient(cfg.Telegram)
	botID, botName, err := client.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("identify bot account: %w", err)
	}

	orch := orchestrator.New(
		trigger.New(cfg.Trigger),
		store,
		client,
		prompt.New(cfg.Trigger.CreatorHandles),
		generator,
		client,
	)
	poller := telegram.NewPoller(client, orch, botID, time.Duration(cfg.Telegram.PollTimeout)*time.Second)

	logx.Info().
		Str("bot", botName).
		Str("storage", cfg.Context.StorageType).
		Str("model", cfg.Generation.Model).
		Msg("bot started")

	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logx.Info().Msg("bot stopped")
	return nil
}

// buildStore selects the context-store variant from config. The durable
// variant pings its backing and fails startup when it is unreachable.
func buildStore(cfg AppConfig) (model.ContextStore, func(), error) {
	switch cfg.Context.StorageType {
	case model.StorageMemory:
		return repo.NewMemoryContextStore(cfg.Context.MaxMessages), func() {}, nil
	case model.StorageRedis:
		rdb, err := cfg.Redis.New()
		if err != nil {
			return nil, nil, fmt.Errorf("initialise redis context store: %w", err)
		}
		return repo.NewRedisContextStore(rdb, cfg.Context.MaxMessages), func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown CONTEXT_STORAGE_TYPE %q", cfg.Context.StorageType)
	}
}
