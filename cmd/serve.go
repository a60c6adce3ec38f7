package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridiron-labs/roster-scout/internal/search"
	"github.com/gridiron-labs/roster-scout/internal/shard"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the search HTTP API",
	Long: `Starts an HTTP server exposing the search engine.

  GET  /health   liveness probe
  POST /search   {"keywords": ["recruiting"]} -> matched rows as JSON`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initSearchEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := cfg.Server.Port
		if servePort != 0 {
			port = servePort
		}

		srv := &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      newRouter(env),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 10 * time.Minute,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("serve: listening", zap.String("addr", srv.Addr))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		zap.L().Info("serve: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func newRouter(env *searchEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/search", handleSearch(env))
	return r
}

type searchRequest struct {
	Keywords []string `json:"keywords"`
}

type searchResponse struct {
	Results []search.KeywordResult `json:"results"`
	Stats   search.Stats           `json:"stats"`
}

func handleSearch(env *searchEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if len(req.Keywords) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one keyword is required"})
			return
		}

		paths, err := shard.Discover(cfg.Shards.Dir)
		if err != nil {
			zap.L().Error("serve: shard discovery failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "search failed"})
			return
		}

		results, stats, err := env.Engine.Search(r.Context(), paths, req.Keywords)
		if err != nil {
			zap.L().Error("serve: search failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "search failed"})
			return
		}
		writeJSON(w, http.StatusOK, searchResponse{Results: results, Stats: stats})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("serve: write response", zap.Error(err))
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
