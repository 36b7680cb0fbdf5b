package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/api"
	"github.com/RoyceAzure/lab/kitchen/internal/api/handler"
	"github.com/RoyceAzure/lab/kitchen/internal/api/router"
	"github.com/RoyceAzure/lab/kitchen/internal/appcontext"
	"github.com/RoyceAzure/lab/kitchen/internal/config"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/kitchen/internal/logger"
	"github.com/RoyceAzure/lab/kitchen/internal/seed"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 30 * time.Second

func main() {
	app := &cli.App{
		Name:  "kitchen",
		Usage: "food ordering backend",
		Before: func(c *cli.Context) error {
			cf := config.GetConfig()
			logger.New(cf.Env, cf.LogLevel, cf.ServiceName)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the http server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update database tables",
				Action: migrate,
			},
			{
				Name:  "seed",
				Usage: "import categories and food items from a yaml file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Value:   "menu.yaml",
						Usage:   "menu file path",
					},
				},
				Action: seedMenu,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("kitchen exited with error")
	}
}

func serve(c *cli.Context) error {
	cf := config.GetConfig()
	app := appcontext.NewApplicationContext(cf)
	if err := app.Init(c.Context); err != nil {
		return err
	}

	// 初始化 handler
	server := api.NewServer(
		handler.NewAuthHandler(app.AuthService),
		handler.NewUserHandler(app.UserService),
		handler.NewCatalogHandler(app.CatalogService),
		handler.NewCartHandler(app.CartService),
		handler.NewOrderHandler(app.OrderService),
		handler.NewPromoHandler(app.PromoService),
		handler.NewHealthHandler(map[string]handler.Pinger{
			"postgres": handler.PingFunc(app.PingDatabase),
			"redis":    handler.PingFunc(app.PingRedis),
		}),
	)

	limits := router.RateLimits{
		Public:        ratelimit.PerMinute(cf.RateLimitPublic),
		Auth:          ratelimit.PerMinute(cf.RateLimitAuth),
		Authenticated: ratelimit.PerMinute(cf.RateLimitAuthenticated),
	}
	r := router.SetupRouter(server, app.TokenMaker, app.RateLimiter, limits, &log.Logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cf.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownCompleted := make(chan struct{}, 1)
	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}
		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Application shutdown error")
		}
		shutdownCompleted <- struct{}{}
	}()

	log.Info().Str("addr", srv.Addr).Msg("Server starting")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownCompleted
	log.Info().Msg("closed completed")
	return nil
}

func migrate(c *cli.Context) error {
	app := appcontext.NewApplicationContext(config.GetConfig())
	if err := app.InitDatabase(c.Context); err != nil {
		return err
	}
	defer app.Shutdown(context.Background())

	log.Info().Msg("Start database migration")
	if err := app.Store.InitMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Info().Msg("Finish database migration")
	return nil
}

func seedMenu(c *cli.Context) error {
	menu, err := config.LoadMenuConfig(c.String("file"))
	if err != nil {
		return fmt.Errorf("load menu file: %w", err)
	}

	app := appcontext.NewApplicationContext(config.GetConfig())
	if err := app.Init(c.Context); err != nil {
		return err
	}
	defer app.Shutdown(context.Background())

	result, err := seed.SeedMenu(c.Context, app.CatalogService, menu)
	if err != nil {
		return err
	}
	log.Info().
		Int("categories_created", result.CategoriesCreated).
		Int("categories_skipped", result.CategoriesSkipped).
		Int("items_created", result.ItemsCreated).
		Int("items_skipped", result.ItemsSkipped).
		Msg("menu seeded")
	return nil
}
