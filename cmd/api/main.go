// cmd/api/main.go
// Main entry point for the insights API
// This file bootstraps all components and starts the server

package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imadgeboyega/kiekky-insights/internal/analysis"
	"github.com/imadgeboyega/kiekky-insights/internal/auth"
	"github.com/imadgeboyega/kiekky-insights/internal/chat"
	"github.com/imadgeboyega/kiekky-insights/internal/common/database"
	"github.com/imadgeboyega/kiekky-insights/internal/common/random"
	"github.com/imadgeboyega/kiekky-insights/internal/config"
	"github.com/imadgeboyega/kiekky-insights/internal/fallback"
	"github.com/imadgeboyega/kiekky-insights/internal/matching"
	"github.com/imadgeboyega/kiekky-insights/internal/storage"
)

func main() {
	log.SetReportTimestamp(true)

	log.Info("========================================")
	log.Info("🚀 Starting Kiekky Insights API")
	log.Info("========================================")

	// 1. Load environment variables
	log.Info("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Warn("⚠️  No .env file found, using environment variables", "err", err)
	} else {
		log.Info("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Info("📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if cfg.IsDevelopment() {
		log.SetLevel(log.DebugLevel)
	}
	log.Info("✅ Configuration loaded", "environment", cfg.Environment, "storage", cfg.StorageDriver)

	// 3. Validate configuration
	log.Info("✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Invalid configuration", "err", err)
	}
	log.Info("✅ Configuration is valid")

	// 4. Open storage
	log.Info("🗄️  Step 4: Opening storage...", "driver", cfg.StorageDriver)
	store, err := openStore(cfg)
	if err != nil {
		log.Fatal("❌ Failed to open storage", "err", err)
	}
	defer store.Close()
	log.Info("✅ Storage ready")

	rng := random.New(cfg.RandomSeed)
	policy := fallback.Policy{
		ReprobeInterval:  cfg.ReprobeInterval,
		FailureThreshold: cfg.FailureThreshold,
	}

	// 5. Analysis
	log.Info("🧠 Step 5: Initializing analysis...")
	var remote analysis.Remote
	if cfg.RemoteAnalysisURL != "" {
		remote = analysis.NewRemoteClient(cfg.RemoteAnalysisURL, cfg.RemoteTimeout)
		log.Info("   - Remote analysis backend configured", "url", cfg.RemoteAnalysisURL)
	} else {
		log.Info("   - No remote analysis backend, using local heuristics")
	}
	analysisService := analysis.NewService(store, remote, analysis.Options{
		StatsWindow:  cfg.StatsWindow,
		HistoryLimit: cfg.HistoryLimit,
		Policy:       policy,
		Random:       rng,
	})
	analysisHandler := analysis.NewHandler(analysisService)
	log.Info("✅ Analysis initialized")

	// 6. Matching
	log.Info("💘 Step 6: Initializing matching...")
	var generator matching.Generator
	if cfg.GeminiAPIKey != "" {
		generator = matching.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Info("   - Gemini configured", "model", cfg.GeminiModel)
	} else {
		log.Info("   - Gemini API key not provided, using local matching")
	}
	matchingService := matching.NewService(generator, rng, policy)
	matchingHandler := matching.NewHandler(matchingService)
	log.Info("✅ Matching initialized")

	// 7. Chat
	log.Info("💬 Step 7: Initializing chat...")
	exporter, err := newExporter(cfg)
	if err != nil {
		log.Fatal("❌ Failed to initialize chat export", "err", err)
	}
	chatService := chat.NewService(chat.NewRepository(store), analysisService, exporter, chat.Options{Random: rng})
	chatHandler := chat.NewHandler(chatService)
	log.Info("✅ Chat initialized")

	// 8. Probe remotes in the background so startup never waits on them
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RemoteTimeout)
		defer cancel()
		status := analysisService.Reprobe(ctx)
		log.Info("🔎 Analysis backend probed", "state", status.State)
	}()

	// 9. Setup routes
	log.Info("🛣️  Step 9: Setting up routes...")
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret, cfg.AuthRequired)
	router := mux.NewRouter()

	v1 := chi.NewRouter()
	matching.RegisterRoutes(v1, matchingHandler, authMiddleware.Authenticate)
	chat.RegisterRoutes(v1, chatHandler, authMiddleware.Authenticate)
	router.PathPrefix("/api/v1/").Handler(v1)
	log.Info("   ✅ Matching and chat routes registered")

	analysis.RegisterRoutes(router, analysisHandler, authMiddleware.Authenticate)
	log.Info("   ✅ Analysis routes registered")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.Use(loggingMiddleware)

	// 10. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      corsMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("========================================")
		log.Infof("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Infof("🌍 Environment: %s", cfg.Environment)
		log.Info("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server", "err", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("❌ Server forced to shutdown", "err", err)
		return
	}

	log.Info("✅ Server exited gracefully")
}

// openStore connects the configured storage backend
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "memory":
		return storage.NewMemoryStore(), nil

	case "sqlite":
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return storage.NewSQLStore(db)

	case "postgres":
		db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return storage.NewSQLStore(db)

	case "redis":
		client, err := database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return storage.NewRedisStore(client), nil

	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}

// newExporter picks S3 or the local export directory
func newExporter(cfg *config.Config) (chat.Exporter, error) {
	if cfg.UseS3 {
		return chat.NewS3Exporter(cfg.S3Bucket, cfg.AWSRegion)
	}
	return chat.NewLocalExporter(cfg.ExportDir), nil
}

// Middleware functions

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Debug("→ request", "method", r.Method, "uri", r.RequestURI, "remote", r.RemoteAddr)

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		log.Info("← response", "method", r.Method, "uri", r.RequestURI, "status", wrapped.statusCode, "duration", time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack lets the live typing websocket upgrade through the wrapper
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+auth.GuestHeader)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
