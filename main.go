// main.go - Liga API server
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liga/config"
	"liga/database"
	"liga/handlers"
	"liga/middleware"
	"liga/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const version = "1.0.0"

func main() {
	setupLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("FATAL: invalid configuration")
	}

	if err := database.InitDB(cfg.DatabaseURL, !cfg.IsProduction()); err != nil {
		log.Fatal().Err(err).Msg("❌ failed to initialize database")
	}
	defer database.CloseDB()

	db := database.GetDB()
	teams := services.NewTeamService(db, cfg.CurrentSeason)
	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, clockwork.NewRealClock())

	handlers.Init(handlers.Deps{
		Teams:    teams,
		Players:  services.NewPlayerService(db, cfg.CurrentSeason),
		Articles: services.NewArticleService(db),
		Seasons:  services.NewSeasonService(database.NewRosterStore(db)),
		Auth:     authService,
		Seed:     services.NewSeedService(teams),
		SeedFile: cfg.SeedFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(cfg.IsProduction()),
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID)
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency}) ${respHeader:X-Request-ID}\n",
	}))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.CORSOrigins != "*",
	}))
	app.Use(middleware.Metrics)

	var generalLimiter, authLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		generalLimiter = middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
		authLimiter = middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
		generalLimiter.StartCleanup(ctx, 10*time.Minute)
		authLimiter.StartCleanup(ctx, 10*time.Minute)
	}
	app.Use(middleware.RateLimit(generalLimiter, "Limite de requisições excedido. Tente novamente mais tarde."))

	handlers.SetupRoutes(app, handlers.RouteConfig{
		Auth:        middleware.NewAuth(authService),
		AuthLimiter: authLimiter,
		Version:     version,
	})

	app.Static("/", cfg.StaticDir)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.AppEnv).
		Str("temporada", cfg.CurrentSeason).
		Bool("rate_limit", cfg.RateLimitEnabled).
		Msg("🚀 HTTP server starting")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// setupLogger configures the global zerolog logger: human readable in
// development, JSON in production.
func setupLogger(env string) {
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	zerolog.DefaultContextLogger = &log.Logger
}
