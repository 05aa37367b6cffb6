package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipefinder-api/internal/cache"
	"github.com/windoze95/recipefinder-api/internal/config"
	"github.com/windoze95/recipefinder-api/internal/handlers"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/metrics"
	"github.com/windoze95/recipefinder-api/internal/middleware"
	"github.com/windoze95/recipefinder-api/internal/repository"
	"github.com/windoze95/recipefinder-api/internal/service"
	"github.com/windoze95/recipefinder-api/internal/sources"
	"github.com/windoze95/recipefinder-api/internal/ws"
)

// Per-IP limits for the /v1 API.
const (
	apiRequestsPerSecond = 10
	apiBurst             = 30
	limiterCleanup       = time.Minute
	limiterExpiration    = 3 * time.Minute
)

// SetupRouter sets up the Gin router.
func SetupRouter(cfg *config.Config, store repository.KVStore, resultCache cache.Cache) *gin.Engine {
	// Create default Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if allowsAnyOrigin(cfg.EnvVars.CORSOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.EnvVars.CORSOrigins
	}
	corsConfig.AddAllowHeaders(middleware.ClientIDHeader, middleware.AdminTokenHeader)
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", metrics.Handler())

	// Source adapters
	srcs := cfg.Sources
	if srcs == nil {
		srcs = config.DefaultSources()
	}
	mealDB := sources.NewTheMealDB(srcs.TheMealDB, cfg.EnvVars.UseTheMealDB)
	cocktailDB := sources.NewTheCocktailDB(srcs.TheCocktailDB, cfg.EnvVars.UseTheCocktailDB)
	recipePuppy := sources.NewRecipePuppy(srcs.RecipePuppy, cfg.EnvVars.RecipePuppyProxyURL, cfg.EnvVars.UseRecipePuppy)

	// Services
	enricher := service.NewEnricher(nil)
	aggregator := service.NewAggregator(mealDB, cocktailDB, recipePuppy)
	favoritesService := service.NewFavoritesService(store)
	pantryService := service.NewPantryService(store)
	localRecipeService := service.NewLocalRecipeService(store)
	searchService := service.NewSearchService(cfg, aggregator, resultCache, enricher)
	catalogService := service.NewCatalogService(cfg, mealDB, cocktailDB, localRecipeService, resultCache, enricher)
	healthService := service.NewHealthService(srcs.Health.Timeout, mealDB, cocktailDB, recipePuppy)

	// Handlers
	searchHandler := handlers.NewSearchHandler(searchService, pantryService)
	itemHandler := handlers.NewItemHandler(catalogService)
	healthHandler := handlers.NewHealthHandler(healthService)
	proxyHandler := handlers.NewProxyHandler(recipePuppy)
	favoritesHandler := handlers.NewFavoritesHandler(favoritesService)
	pantryHandler := handlers.NewPantryHandler(pantryService)
	adminHandler := handlers.NewAdminHandler(cfg.EnvVars.AdminToken, localRecipeService)
	imageHandler := handlers.NewImageHandler(cfg)

	api := r.Group("/v1")
	api.Use(middleware.RateLimitByIP(apiRequestsPerSecond, apiBurst, limiterCleanup, limiterExpiration))
	{
		// Source health
		api.GET("/health", healthHandler.Health)

		// Search and browse routes
		api.GET("/search", middleware.AttachClientID(), searchHandler.Search)
		api.GET("/items/popular", itemHandler.Popular)
		api.GET("/items/:item_id", itemHandler.GetItem)
		api.GET("/cocktails", itemHandler.ListCocktails)

		// RecipePuppy passthrough
		api.GET("/proxy/recipepuppy", proxyHandler.RecipePuppy)
	}

	// Group for per-browser data, keyed by the client id header
	apiClient := api.Group("")
	{
		apiClient.Use(middleware.RequireClientID())

		apiClient.GET("/favorites", favoritesHandler.ListFavorites)
		apiClient.POST("/favorites", favoritesHandler.AddFavorite)
		apiClient.POST("/favorites/toggle", favoritesHandler.ToggleFavorite)
		apiClient.GET("/favorites/:item_id", favoritesHandler.IsFavorite)
		apiClient.DELETE("/favorites/:item_id", favoritesHandler.RemoveFavorite)

		apiClient.GET("/pantry", pantryHandler.GetPantry)
		apiClient.PUT("/pantry", pantryHandler.ReplacePantry)
		apiClient.POST("/pantry/items", pantryHandler.AddPantryItem)
		apiClient.DELETE("/pantry/items/:name", pantryHandler.RemovePantryItem)
	}

	// Admin routes
	api.POST("/admin/auth", adminHandler.Authenticate)
	apiAdmin := api.Group("/admin")
	{
		apiAdmin.Use(middleware.RequireAdminToken(cfg.EnvVars.AdminToken))

		apiAdmin.GET("/recipes", adminHandler.ListRecipes)
		apiAdmin.POST("/recipes", adminHandler.SubmitRecipe)
		apiAdmin.POST("/images", imageHandler.UploadImage)
	}

	// WebSocket routes (client id via the client_id query parameter)
	hub := ws.NewHub()
	go hub.Run()
	cookingHandler := ws.NewCookingHandler(hub, catalogService, cfg.EnvVars.CORSOrigins)
	storageFeedHandler := ws.NewStorageFeedHandler(hub, store, cfg.EnvVars.CORSOrigins)
	r.GET("/v1/ws/cook/:item_id", middleware.AttachClientID(), cookingHandler.HandleCookSession)
	r.GET("/v1/ws/storage", middleware.RequireClientID(), storageFeedHandler.HandleStorageFeed)

	return r
}

func allowsAnyOrigin(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return len(origins) == 0
}
