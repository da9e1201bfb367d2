package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pixlshare/pixl-viewer/internal/applog"
	"github.com/pixlshare/pixl-viewer/internal/devserver"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	addr := flag.String("addr", ":8990", "listen address")
	items := flag.Int("items", 24, "number of seeded feed items")
	seed := flag.Int64("seed", 0, "feed seed, 0 derives one from the clock")
	flag.Parse()

	defer applog.Init(applog.Environment())()

	zap.S().Infof("Pixl dev server v%s starting...", version)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	store := devserver.NewStore(*items, *seed)
	handler := devserver.NewHandler(store, zap.L())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	handler.RegisterRoutes(r)

	server := &http.Server{
		Addr:              *addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zap.S().Infof("Serving %d items on http://localhost%s", *items, *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("Server stopped: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	zap.S().Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorf("Shutdown failed: %v", err)
	}
}
