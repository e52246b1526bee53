// Package main is the entry point for the Lead Management API.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/white/lead-management/config"
	"github.com/white/lead-management/internal/cache"
	"github.com/white/lead-management/internal/events"
	"github.com/white/lead-management/internal/handlers"
	"github.com/white/lead-management/internal/middleware"
	"github.com/white/lead-management/internal/repositories"
	"github.com/white/lead-management/pkg/gemini"
	"github.com/white/lead-management/pkg/kafka"
	"github.com/white/lead-management/pkg/logger"
	"github.com/white/lead-management/pkg/mongodb"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables (ignore error in dev)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format, "lead-management-api")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// MongoDB
	mongoClient, err := mongodb.NewClient(mongodb.Config{
		URI:         cfg.MongoDB.URI,
		Database:    cfg.MongoDB.Database,
		MaxPoolSize: cfg.MongoDB.MaxPoolSize,
		MinPoolSize: cfg.MongoDB.MinPoolSize,
		MaxRetries:  cfg.MongoDB.MaxRetries,
	}, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	// Redis cache (optional: a dead Redis only costs the cache)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	leadCache := cache.NewLeadCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)

	// Kafka producer (optional: without a broker, events are dropped)
	var producer *kafka.Producer
	if p, err := kafka.NewProducer(cfg.Kafka, zapLogger); err != nil {
		zapLogger.Warn("Kafka producer unavailable, lead events disabled", zap.Error(err))
	} else {
		producer = p
		defer producer.Close()
	}
	publisher := events.NewPublisher(producer, cfg.Kafka.Topics, zapLogger)

	// Gemini suggestion client
	geminiClient := gemini.NewClient(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second,
	}, zapLogger)

	// Repositories and handlers
	leadRepo := repositories.NewMongoLeadRepository(mongoClient)
	leadHandler := handlers.NewLeadHandler(leadRepo, leadCache, publisher, zapLogger)
	suggestionHandler := handlers.NewSuggestionHandler(leadRepo, geminiClient, zapLogger)
	healthHandler := handlers.NewHealthHandler(cfg.Server.Version, map[string]handlers.Pinger{
		"mongodb": mongoClient,
		"redis":   leadCache,
	})

	// Router
	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(middleware.RequestLogging(zapLogger))

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"Endpoint not found"}}`))
	})

	// Health check endpoint
	router.HandleFunc("/health", healthHandler.GetOverallHealth).Methods("GET", "OPTIONS")

	// Swagger UI endpoint - API documentation
	router.PathPrefix("/swagger").Handler(httpSwagger.Handler(
		httpSwagger.URL("http://localhost:"+cfg.Server.Port+"/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)).Methods(http.MethodGet)

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/leads", leadHandler.ListLeads).Methods("GET", "OPTIONS")
	api.HandleFunc("/leads", leadHandler.CreateLead).Methods("POST", "OPTIONS")
	api.HandleFunc("/leads/board", leadHandler.GetBoard).Methods("GET", "OPTIONS")
	api.HandleFunc("/leads/stats", leadHandler.GetStats).Methods("GET", "OPTIONS")
	api.HandleFunc("/leads/{id}", leadHandler.GetLead).Methods("GET", "OPTIONS")
	api.HandleFunc("/leads/{id}", leadHandler.UpdateLead).Methods("PATCH", "OPTIONS")
	api.HandleFunc("/leads/{id}", leadHandler.DeleteLead).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/leads/{id}/conversation", leadHandler.LogConversation).Methods("POST", "OPTIONS")
	api.HandleFunc("/leads/{id}/suggestions", suggestionHandler.GetSuggestions).Methods("POST", "OPTIONS")

	// HTTP server configuration
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		zapLogger.Info("Server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server stopped")
}

// corsMiddleware adds CORS headers to responses.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowedOrigins := []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}

		for _, allowed := range allowedOrigins {
			if origin == allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				break
			}
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
