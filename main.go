package main

import (
	"Wordrush/config"
	pgconfig "Wordrush/config/postgres"
	_ "Wordrush/config/swagger"
	"Wordrush/controllers"
	"Wordrush/logger"
	"Wordrush/middleware"
	"Wordrush/routes"
	"Wordrush/services/analytics"
	"Wordrush/services/categories"
	"Wordrush/services/game"
	"Wordrush/services/letters"
	"Wordrush/services/redis"
	"Wordrush/services/store"
	"Wordrush/services/validation"
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

// @title Wordrush API
// @version 1.0
// @description Gin-Gonic server for the "Wordrush" word race game
// @BasePath /
func main() {
	godotenv.Load()
	cfg := config.LoadServerConfig()
	logger.SetVerbose(cfg.Verbose)
	logger.Infof("Setting up server...")

	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
		if cfg.SessionKey == "" {
			logger.Fatalf("KEY must be set in production")
		}
	}

	health := map[string]controllers.HealthCheck{}

	var roomStore store.Store
	switch cfg.Store {
	case config.StoreMemory:
		logger.Warnf("Using the in-memory store, rooms are lost on restart")
		roomStore = store.NewMemoryStore()
	default:
		gormDB, err := pgconfig.ConnectGORM()
		if err != nil {
			logger.Fatalf("Error connecting to PostgreSQL: %v", err)
		}
		logger.Infof("GORM Connected")

		// Only migrate in development or during deployment
		if cfg.MigratePostgres {
			logger.Infof("Migrating PostgreSQL database...")
			if err := pgconfig.MigrateDatabase(gormDB); err != nil {
				logger.Warnf("Database migration failed: %v", err)
			} else {
				logger.Infof("Database migrated successfully")
			}
		}

		sqlDB, err := gormDB.DB()
		if err != nil {
			logger.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
		}
		defer sqlDB.Close()
		health["postgres"] = sqlDB.PingContext
		roomStore = store.NewGormStore(gormDB)
	}

	deps := game.Deps{Store: roomStore}
	var difficulty categories.DifficultyLookup

	if cfg.RedisURL != "" {
		redisClient, err := config.Connect_redis()
		if err != nil {
			logger.Fatalf("Error connecting to Redis: %v", err)
		}
		logger.Infof("Connection to Redis successful")
		defer redis.CloseRedis(redisClient)
		health["redis"] = redisClient.Ping

		dispatcher := analytics.NewDispatcher(redisClient, cfg.AnalyticsBuffer)
		dispatcher.Start()
		defer dispatcher.Close()

		deps.Sink = dispatcher
		deps.History = redisClient
		difficulty = categories.NewDifficultyCache(redisClient, cfg.DifficultyCacheTTL)
	} else {
		logger.Warnf("REDIS_URL not set, analytics and player history are disabled")
	}

	catalog, bases := categories.DefaultCatalog, categories.DefaultBaseCategories
	if cfg.OracleURL != "" {
		deps.Oracle = validation.NewHTTPOracle(cfg.OracleURL, cfg.OracleTimeout)
		logger.Infof("Validating words against %s", cfg.OracleURL)
	} else {
		dict := validation.NewDictionaryOracle(validation.SampleWordLists)
		if cfg.WordListPath != "" {
			loaded, err := validation.LoadDictionary(cfg.WordListPath)
			if err != nil {
				logger.Fatalf("Error loading word lists: %v", err)
			}
			dict = loaded
		}
		// the dictionary rejects every word of a category it has no list for
		catalog = lo.Filter(catalog, func(c categories.Category, _ int) bool { return dict.Knows(c.Name) })
		bases = lo.Filter(bases, func(b string, _ int) bool { return dict.Knows(b) })
		if len(catalog) == 0 || len(bases) == 0 {
			logger.Fatalf("Word lists cover no playable category")
		}
		deps.Oracle = dict
		logger.Infof("Validating words against %d local word lists", len(dict.Categories()))
	}

	seed := time.Now().UnixNano()
	deps.Selector = categories.NewSelector(catalog, bases, difficulty, rand.New(rand.NewSource(seed)))
	deps.Letters = letters.NewGenerator(rand.New(rand.NewSource(seed + 1)))
	engine := game.NewEngine(deps, cfg.Game)

	var verifier *middleware.TokenVerifier
	if cfg.JWTSecret != "" {
		verifier = middleware.NewTokenVerifier(cfg.JWTSecret, 24*time.Hour)
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := gin.Default()
	middleware.SetUpMiddleware(r, cfg.SessionKey, cfg.Production)
	routes.SetupRoutes(r, routes.Deps{
		Rooms:    &controllers.RoomController{Engine: engine},
		Limiter:  limiter,
		Verifier: verifier,
		Health:   health,
	})

	stop := make(chan struct{})
	defer close(stop)
	go cleanupLimiters(limiter, stop)

	startServer(r, cfg.Port)
}

func cleanupLimiters(limiter *middleware.RateLimiter, stop <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := limiter.Cleanup(30 * time.Minute); n > 0 {
				logger.Debugf("[RATE-LIMIT] dropped %d idle limiters", n)
			}
		case <-stop:
			return
		}
	}
}

func startServer(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logger.Infof("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warnf("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logger.Infof("Server starting on port %s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatalf("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logger.Infof("Server shutdown complete")
}
