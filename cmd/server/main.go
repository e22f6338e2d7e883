package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cryptolio/backend/internal/cache"
	"github.com/cryptolio/backend/internal/db"
	"github.com/cryptolio/backend/internal/handlers"
	"github.com/cryptolio/backend/internal/logger"
	"github.com/cryptolio/backend/internal/repositories"
	"github.com/cryptolio/backend/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	database, err := db.Connect(db.NewConfig())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	log.Info("database connection established")

	store := newCacheStore(log)

	// Repositories
	marketRepo := repositories.NewMarketDataRepository(database)
	portfolioRepo := repositories.NewPortfolioRepository(database)
	analyticsRepo := repositories.NewAnalyticsRepository(database)

	// Services
	exchange := services.NewKrakenClient(log)
	marketService := services.NewMarketDataService(exchange, store, marketRepo, log)
	portfolioService := services.NewPortfolioService(marketService, services.NewPortfolioCalculator(), portfolioRepo, log)
	analyticsService := services.NewAnalyticsService(services.NewCovidAnalyzer(), analyticsRepo, log)

	// Handlers
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	marketHandler := handlers.NewMarketDataHandler(marketService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		code := http.StatusOK
		if err := database.Health(); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		w.Write([]byte(`{"status":"` + status + `","service":"cryptolio-backend"}`))
	})

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/portfolio/process", portfolioHandler.HandleProcess).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/portfolio/results", portfolioHandler.HandleResults).Methods(http.MethodGet)
	api.HandleFunc("/portfolio/results/{id}", portfolioHandler.HandleResult).Methods(http.MethodGet)
	api.HandleFunc("/portfolio/logs", portfolioHandler.HandleLogs).Methods(http.MethodGet)
	api.HandleFunc("/market/price/current", marketHandler.HandleCurrentPrice).Methods(http.MethodGet)
	api.HandleFunc("/market/price/opening", marketHandler.HandleOpeningAverage).Methods(http.MethodGet)
	api.HandleFunc("/market/price/history", marketHandler.HandlePriceHistory).Methods(http.MethodGet)
	api.HandleFunc("/analytics/covid", analyticsHandler.HandleCovidPrediction).Methods(http.MethodGet)
	api.HandleFunc("/analytics/report", analyticsHandler.HandleReport).Methods(http.MethodPost)

	handler := handlers.CORS(handlers.RequestLogger(log)(router))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newCacheStore picks Redis when REDIS_ADDR is set and falls back to the
// in-process store otherwise, so a dev box runs without any Redis.
func newCacheStore(log *zap.Logger) cache.Store {
	config := cache.NewConfig()
	if config.Addr == "" {
		log.Info("no REDIS_ADDR configured, using in-process cache")
		return cache.NewMemoryStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := cache.NewRedisStore(ctx, config)
	if err != nil {
		log.Warn("redis unavailable, using in-process cache", zap.Error(err))
		return cache.NewMemoryStore()
	}
	log.Info("redis cache connected", zap.String("addr", config.Addr))
	return store
}
