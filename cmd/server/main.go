package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/NemoTravel/results/internal/cache"
	"github.com/NemoTravel/results/internal/handler"
	"github.com/NemoTravel/results/internal/ratelimit"
)

type Config struct {
	Port          string
	CacheEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisTTL      time.Duration
	RateLimitRPS  float64
	RateLimitSize int
}

func main() {
	cfg := loadConfig()
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	var snapshotCache cache.Cache
	if cfg.CacheEnabled {
		redisCfg := cache.DefaultRedisConfig()
		redisCfg.Host = cfg.RedisHost
		redisCfg.Port = cfg.RedisPort
		redisCfg.TTL = cfg.RedisTTL

		redisCache, err := cache.NewRedisCache(redisCfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		snapshotCache = redisCache
		log.Printf("Redis snapshot cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		snapshotCache = cache.NewNoOpCache()
		log.Println("Snapshot cache disabled")
	}
	defer snapshotCache.Close()

	limiter := ratelimit.NewClientLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitSize,
	})

	resultsHandler := handler.NewResultsHandler(snapshotCache)

	api := e.Group("/api/v1", handler.RateLimit(limiter))
	api.POST("/results", resultsHandler.Load)
	api.GET("/results/:id/flights", resultsHandler.Flights)
	api.POST("/results/:id/select", resultsHandler.SelectFlight)
	api.POST("/results/:id/back", resultsHandler.GoBack)
	api.POST("/results/:id/filters", resultsHandler.SetFilters)
	api.GET("/results/:id/fare-families", resultsHandler.FareFamilies)
	api.POST("/results/:id/fare-families/select", resultsHandler.SelectFamily)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting results server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:          getEnv("PORT", "8080"),
		CacheEnabled:  getEnvBool("CACHE_ENABLED", true),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisTTL:      getEnvDuration("REDIS_TTL", 30*time.Minute),
		RateLimitRPS:  getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitSize: getEnvInt("RATE_LIMIT_BURST", 40),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
