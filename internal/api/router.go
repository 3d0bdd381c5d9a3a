package api

import (
	"context"
	"time"

	"chef-app/internal/api/handlers/health"
	pantryHandler "chef-app/internal/api/handlers/pantry"
	recipeHandler "chef-app/internal/api/handlers/recipe"
	"chef-app/internal/api/middleware"
	"chef-app/internal/app"
	"chef-app/internal/pkg/common"
	"chef-app/internal/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 超時設置，AI 匯入可能需要較久
const timeoutDuration = 120 * time.Second

// SetupRouter 設置路由
func SetupRouter(a *app.App) *gin.Engine {
	cfg := a.Config
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())

	origins := cfg.CORS.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !containsWildcard(origins),
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	maxBody := cfg.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	router.Use(middleware.BodySizeLimit(maxBody))

	// 設置請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	healthH := health.NewHandler(cfg.App.Version, a.AI.Model(), a.Store, a.Queue)
	recipeH := recipeHandler.NewHandler(a.Catalog, a.Imports)
	pantryH := pantryHandler.NewHandler(a.Catalog)

	// 健康檢查路由
	router.GET("/health", healthH.HealthCheck)
	router.GET("/ready", healthH.ReadinessCheck)
	router.GET("/live", healthH.LivenessCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 匯入路由共用限流與去重
	imports := []gin.HandlerFunc{middleware.NewDeduplicator(cfg.DedupWindow).Middleware()}
	if cfg.RateLimit.Enabled {
		imports = append(imports, middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	api := router.Group("/api/v1")
	{
		recipes := api.Group("/recipes")
		{
			recipes.GET("", recipeH.List)
			recipes.GET("/home", recipeH.Home)
			recipes.GET("/:name", recipeH.Get)
			recipes.POST("", append(imports, recipeH.ImportRecord)...)
			recipes.POST("/:name/favorite", recipeH.ToggleFavorite)
		}

		importGroup := api.Group("/imports", imports...)
		{
			importGroup.POST("/text", recipeH.ImportText)
			importGroup.POST("/video", recipeH.ImportVideo)
		}

		api.POST("/shopping-list", pantryH.ShoppingList)
		api.POST("/cookable", pantryH.Cookable)
		api.GET("/pantry", pantryH.View)

		basics := api.Group("/basics")
		{
			basics.GET("", pantryH.ListBasics)
			basics.POST("", pantryH.AddBasic)
			basics.DELETE("/:name", pantryH.RemoveBasic)
		}

		api.POST("/cook/view", recipeH.CookView)
		api.POST("/catalog/sync", recipeH.Sync)
	}

	common.LogInfo("Router setup completed successfully",
		zap.String("model", a.AI.Model()),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBody),
	)

	return router
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
