package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/spf13/cobra"

	"chilume_backend/internals/configs"
	database "chilume_backend/internals/databases"
	"chilume_backend/internals/features/users/auth/identity"
	helper "chilume_backend/internals/helpers"
	"chilume_backend/internals/logger"
	"chilume_backend/internals/metrics"
	"chilume_backend/internals/middlewares"
	"chilume_backend/internals/notifications"
	routes "chilume_backend/internals/route"
	"chilume_backend/internals/seeds"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := configs.LoadEnv()

	bootCtx, cancelBoot := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancelBoot()

	store, err := database.OpenStore(bootCtx, cfg)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	if err := store.Migrate(bootCtx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	// the in-memory store starts empty on every boot
	if cfg.DocumentStore == configs.StoreMemory {
		if err := seeds.RunAllSeeds(bootCtx, store, cfg); err != nil {
			return fmt.Errorf("seed memory store: %w", err)
		}
	}

	provider := identity.NewLocalProvider(store, cfg.JWTSecret, cfg.JWTTTL)
	unsubscribe := provider.OnSessionChange(func(ev identity.SessionEvent) {
		logger.LogI("session changed", "kind", ev.Kind, "email", ev.Session.Email, "role", ev.Session.Role)
	})
	defer unsubscribe()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.FiberErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app, cfg)

	routes.SetupRoutes(app, routes.Deps{
		Config:   cfg,
		Store:    store,
		Identity: provider,
		Notifier: notifications.Select(cfg.TelegramBotToken, cfg.TelegramAdminChatID),
		Metrics:  metrics.New(),
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	serverErr := make(chan error, 1)
	go func() {
		logger.LogI("listening", "port", cfg.Port, "document_store", cfg.DocumentStore)
		serverErr <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case sig := <-quit:
		logger.LogI("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.LogW("http shutdown", "error", err)
	}
	if err := store.Close(ctx); err != nil {
		logger.LogW("close document store", "error", err)
	}
	return nil
}
