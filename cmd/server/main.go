package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/rasterpad/rasterpad/internal/auth"
	"github.com/rasterpad/rasterpad/internal/collab"
	"github.com/rasterpad/rasterpad/internal/config"
	"github.com/rasterpad/rasterpad/internal/engine"
	"github.com/rasterpad/rasterpad/internal/export"
	mw "github.com/rasterpad/rasterpad/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	authService := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)
	authHandler := auth.NewHandler(authService)

	hub := collab.NewHub(cfg.CanvasWidth, cfg.CanvasHeight,
		engine.Options{ReflectRefill: cfg.ReflectRefill}, cfg.IdleTimeout)
	sessionHandler := collab.NewHandler(hub, authService, cfg.AllowedOrigins)
	exportHandler := export.NewHandler(hub, cfg.MaxZoom, cfg.MaxExportSize)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.AllowedOrigins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Session creation is public; the response carries the session token.
	r.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")

	// WebSocket endpoint, token passed as a query parameter
	r.HandleFunc("/ws/sessions/{sessionId}", sessionHandler.ServeWS)

	// Protected session routes
	api := r.PathPrefix("/sessions/{sessionId}").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("", sessionHandler.State).Methods("GET", "OPTIONS")
	api.HandleFunc("", sessionHandler.Close).Methods("DELETE")
	api.HandleFunc("/frame", exportHandler.Frame).Methods("GET", "OPTIONS")
	api.HandleFunc("/token", authHandler.Refresh).Methods("POST", "OPTIONS")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Close sessions first so clients get session.closed
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr,
		"canvas", fmt.Sprintf("%dx%d", cfg.CanvasWidth, cfg.CanvasHeight))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
