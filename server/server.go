package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"melodex/config"
	"melodex/core/stats"
	"melodex/db"
	"melodex/logger"
	"melodex/model"
	"melodex/repository"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server. With useMemory set, the
// catalog lives in process memory instead of MySQL.
func Start(useMemory bool) {
	cfg := config.Load()
	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	var songRepo repository.SongRepository
	if useMemory {
		logger.Info("Using in-memory song store")
		songRepo = repository.NewMemorySongRepository()
	} else {
		if err := db.ConnectDB(cfg); err != nil {
			logger.Fatal("Failed to connect to database", logger.ErrorField(err))
		}
		defer db.DB.Close()

		if err := db.ConnectGormDB(cfg); err != nil {
			logger.Fatal("Failed to connect to database with GORM", logger.ErrorField(err))
		}
		defer db.CloseGormDB()

		if err := db.AutoMigrateModels(&model.Song{}); err != nil {
			logger.Fatal("Failed to migrate database schema", logger.ErrorField(err))
		}

		songRepo = repository.NewMySQLSongRepository()
	}

	handler := NewSongHandler(songRepo, stats.NewEngine(songRepo))
	server.Handler = NewRouter(handler)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", logger.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}

// NewRouter wires the song catalog routes onto a gorilla/mux router.
func NewRouter(h *SongHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(requestIDMiddleware)

	router.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	router.HandleFunc("/songs", h.GetSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/songs", h.CreateSongHandler).Methods(http.MethodPost)
	router.HandleFunc("/songs/filter", h.FilterSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/songs/{id}", h.UpdateSongHandler).Methods(http.MethodPut)
	router.HandleFunc("/songs/{id}", h.DeleteSongHandler).Methods(http.MethodDelete)
	router.HandleFunc("/statistics", h.StatisticsHandler).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	return router
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		logger.Debug("Handling request",
			logger.String("requestId", requestID),
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, nil, "ok")
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, CodeRouteNotFound, "Route not found", nil)
}
