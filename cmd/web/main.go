package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"blogfront/internal/api"
	"blogfront/internal/config"
	"blogfront/internal/httpserver"
	"blogfront/internal/logging"
	"blogfront/internal/middleware"
	"blogfront/internal/search"
	"blogfront/internal/session"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	store, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	client := api.NewClient(cfg.APIBaseURL)

	e := echo.New()
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	deps := &httpserver.Deps{
		Handler: &httpserver.Handler{
			Cfg:      cfg,
			API:      client,
			Sessions: store,
			Debounce: search.NewDebouncer(cfg.SearchDebounce),
		},
		Guard:       &middleware.Guard{Store: store, API: client},
		TemplateDir: "web/templates",
	}
	if err := httpserver.Register(e, deps); err != nil {
		log.Fatal(err)
	}

	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
