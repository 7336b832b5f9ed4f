package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/areaviz/areaviz/backend-go/internal/auth"
	"github.com/areaviz/areaviz/backend-go/internal/config"
	"github.com/areaviz/areaviz/backend-go/internal/db"
	"github.com/areaviz/areaviz/backend-go/internal/favorite"
	"github.com/areaviz/areaviz/backend-go/internal/live"
	mw "github.com/areaviz/areaviz/backend-go/internal/middleware"
	"github.com/areaviz/areaviz/backend-go/internal/preferences"
	"github.com/areaviz/areaviz/backend-go/internal/tablet"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := run(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return err
	}

	catalog, err := loadCatalog(cfg.TabletCatalog)
	if err != nil {
		return err
	}
	slog.Info("tablet catalog loaded", "models", catalog.Len())

	authService := auth.NewService(auth.NewPGStore(pool), cfg.JWTSecret, cfg.TokenTTL)
	authHandler := auth.NewHandler(authService)

	prefsHandler := preferences.NewHandler(preferences.NewService(preferences.NewPGStore(pool)))
	favoriteHandler := favorite.NewHandler(favorite.NewService(favorite.NewPGStore(pool)))
	tabletHandler := tablet.NewHandler(catalog)

	hub := live.NewHub()

	r := mux.NewRouter()

	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// The tablet catalog is public so the picker works before sign-in.
	r.HandleFunc("/api/tablets", tabletHandler.Search).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/tablets/{tabletId}", tabletHandler.Get).Methods("GET", "OPTIONS")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/me", authHandler.Me).Methods("GET", "OPTIONS")
	api.HandleFunc("/preferences", prefsHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/preferences", prefsHandler.Put).Methods("PUT", "OPTIONS")
	api.HandleFunc("/favorites", favoriteHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/favorites", favoriteHandler.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/favorites/{favoriteId}", favoriteHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/favorites/{favoriteId}", favoriteHandler.Update).Methods("PUT", "OPTIONS")
	api.HandleFunc("/favorites/{favoriteId}", favoriteHandler.Delete).Methods("DELETE", "OPTIONS")

	r.Handle("/ws/live", live.NewHandler(hub, authService, cfg.OriginHosts()))

	// Static app, including the compiled engine (main.wasm).
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir))).Methods("GET", "HEAD")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		slog.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func loadCatalog(path string) (*tablet.Catalog, error) {
	if path == "" {
		return tablet.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tablet catalog: %w", err)
	}
	defer f.Close()

	catalog, err := tablet.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load tablet catalog %s: %w", path, err)
	}
	return catalog, nil
}
