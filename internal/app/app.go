package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chef-app/internal/core/ai/cache"
	"chef-app/internal/core/ai/ollama"
	"chef-app/internal/core/ai/openrouter"
	"chef-app/internal/core/ai/provider"
	"chef-app/internal/core/ai/queue"
	"chef-app/internal/core/ai/service"
	"chef-app/internal/core/recipe"
	"chef-app/internal/core/video"
	"chef-app/internal/infrastructure/config"
	"chef-app/internal/infrastructure/database"
	"chef-app/internal/pkg/common"
	"chef-app/internal/store"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// App 兩個執行檔共用的元件
type App struct {
	Config  *config.Config
	DB      *sql.DB
	Store   *store.RecipeStore
	AI      *service.Service
	Queue   *queue.Manager
	Catalog *recipe.CatalogService
	Imports *recipe.ImportService

	cron *cron.Cron
}

// New 依設定建立所有服務並載入目錄
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, DB: db, Store: store.NewRecipeStore(db)}

	p, err := newProvider(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	c, err := newCache(ctx, cfg)
	if err != nil {
		// 快取失敗不影響匯入，只是每次都呼叫模型
		common.LogWarn("AI 快取初始化失敗，改為不使用快取",
			zap.String("backend", cfg.Cache.Backend),
			zap.Error(err),
		)
		c = nil
	}

	a.AI = service.NewService(p, c, service.Options{
		Timeout:   cfg.AI.Timeout,
		CacheTTL:  cfg.Cache.TTL,
		MaxTokens: cfg.OpenRouter.MaxTokens,
		JSON:      true,
	})

	a.Queue = queue.NewManager(a.AI, queue.Config{
		Workers: cfg.Queue.Workers,
		MaxSize: cfg.Queue.MaxSize,
	})

	var transcripts recipe.TranscriptFetcher
	if cfg.Transcript.BaseURL != "" {
		transcripts = video.NewTranscriptClient(video.TranscriptConfig{
			BaseURL:   cfg.Transcript.BaseURL,
			Languages: cfg.Transcript.Languages,
			Timeout:   cfg.Transcript.Timeout,
		})
	}

	a.Catalog = recipe.NewCatalogService(a.Store)
	a.Imports = recipe.NewImportService(a.Store, a.Catalog, a.Queue, transcripts)

	if err := a.Catalog.Refresh(ctx); err != nil {
		a.Close()
		return nil, err
	}

	common.LogInfo("服務初始化完成",
		zap.String("database", cfg.Database.Path),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("model", a.AI.Model()),
		zap.Int("ai_workers", a.Queue.Status().Workers),
		zap.Bool("cache_enabled", c != nil),
		zap.Bool("transcripts_enabled", transcripts != nil),
		zap.Int("recipes", len(a.Catalog.Recipes())),
	)

	return a, nil
}

func newProvider(cfg *config.Config) (provider.Provider, error) {
	switch cfg.AI.Provider {
	case "openrouter":
		if cfg.OpenRouter.APIKey == "" {
			common.LogWarn("未設定 OPENROUTER_API_KEY，AI 匯入已停用")
			return provider.Disabled{}, nil
		}
		common.LogInfo("使用 OpenRouter",
			zap.String("api_key", config.MaskAPIKey(cfg.OpenRouter.APIKey)),
			zap.String("model", cfg.OpenRouter.Model),
		)
		return openrouter.NewClient(openrouter.Config{
			APIKey:    cfg.OpenRouter.APIKey,
			BaseURL:   cfg.OpenRouter.BaseURL,
			Model:     cfg.OpenRouter.Model,
			MaxTokens: cfg.OpenRouter.MaxTokens,
			Timeout:   cfg.OpenRouter.Timeout,
		}), nil
	case "ollama":
		client, err := ollama.NewClient(ollama.Config{
			URL:         cfg.Ollama.URL,
			Model:       cfg.Ollama.Model,
			Temperature: cfg.Ollama.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		common.LogInfo("使用 Ollama",
			zap.String("url", cfg.Ollama.URL),
			zap.String("model", cfg.Ollama.Model),
		)
		return client, nil
	default:
		return provider.Disabled{}, nil
	}
}

func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if !cfg.Cache.Enabled || !cfg.AI.EnableCache {
		return nil, nil
	}
	if cfg.Cache.Backend == "redis" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	return cache.NewManager(cache.ManagerConfig{
		MaxSize:         cfg.Cache.MaxSize,
		TTL:             cfg.Cache.TTL,
		CleanupInterval: cfg.Cache.CleanupInterval,
	}), nil
}

// StartScheduler 依 catalog.refresh_schedule 定期重新載入目錄
func (a *App) StartScheduler() error {
	schedule := a.Config.Catalog.RefreshSchedule
	if schedule == "" {
		return nil
	}

	a.cron = cron.New()
	if _, err := a.cron.AddFunc(schedule, func() {
		if err := a.Catalog.Refresh(context.Background()); err != nil {
			common.LogError("定期同步目錄失敗", zap.Error(err))
		}
	}); err != nil {
		a.cron = nil
		return fmt.Errorf("invalid catalog refresh schedule %q: %w", schedule, err)
	}
	a.cron.Start()

	common.LogInfo("目錄定期同步已啟動", zap.String("schedule", schedule))
	return nil
}

// Close 停止排程並釋放資源
func (a *App) Close() error {
	if a.cron != nil {
		<-a.cron.Stop().Done()
	}

	if a.Queue != nil {
		a.Queue.Close()
	}

	var errs []error
	if a.AI != nil {
		if err := a.AI.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return errors.Join(errs...)
}
