package main

import (
	"os"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/cache"
	"github.com/windoze95/recipefinder-api/internal/config"
	"github.com/windoze95/recipefinder-api/internal/db"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/repository"
	"github.com/windoze95/recipefinder-api/internal/router"
	"go.uber.org/zap"
)

// resultCacheEntries bounds the in-process result cache used without Redis.
const resultCacheEntries = 500

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the API.
func main() {
	defer logger.Sync()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}

	// Load source endpoints from YAML
	srcs, err := config.LoadSources(cfg.EnvVars.SourcesFile)
	if err != nil {
		logger.Get().Fatal("failed to load sources", zap.Error(err))
	}
	cfg.Sources = srcs

	// Key-value store: Postgres when configured, otherwise process memory
	var store repository.KVStore
	if cfg.EnvVars.DatabaseUrl != "" {
		database, err := db.New(cfg)
		if err != nil {
			logger.Get().Fatal("failed to connect to database", zap.Error(err))
		}
		sqlDB, err := database.DB()
		if err != nil {
			logger.Get().Fatal("failed to get underlying sql.DB", zap.Error(err))
		}
		defer sqlDB.Close()
		store = repository.NewKVRepository(database)
	} else {
		logger.Get().Warn("DATABASE_URL not set, favorites and pantry are kept in memory")
		store = repository.NewMemoryKVStore()
	}

	// Result cache: Redis when configured, otherwise process memory
	resultCache, err := cache.New(cfg.EnvVars.RedisURL, resultCacheEntries)
	if err != nil {
		logger.Get().Fatal("failed to set up result cache", zap.Error(err))
	}

	// Create a new gin router
	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(cfg, store, resultCache)

	// Run the server
	logger.Get().Info("starting server", zap.String("port", cfg.EnvVars.Port))
	if err := r.Run(":" + cfg.EnvVars.Port); err != nil {
		logger.Get().Fatal("server stopped", zap.Error(err))
	}
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}
