package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/goliatone/go-auth-api"
	"github.com/goliatone/go-auth-api/config"
	"github.com/goliatone/go-auth-api/middleware/jwtware"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	tokens, err := auth.NewTokenService([]byte(cfg.SigningKey), cfg.TokenExpiration, logger)
	if err != nil {
		logger.Error("token service setup failed", "error", err)
		os.Exit(1)
	}

	users := auth.NewUsersRepository(db)
	auther := auth.NewAuthenticator(users, tokens).WithLogger(logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello from Backend!!!!")
	})

	controller := auth.NewAuthController(func(ac *auth.AuthController) *auth.AuthController {
		ac.Auther = auther
		return ac.WithLogger(logger)
	})

	api := app.Group("/api/auth")
	auth.RegisterAuthRoutes(api, controller)

	protected := jwtware.New(jwtware.Config{
		Verifier:   tokens,
		Resolver:   users,
		ContextKey: controller.ContextKey,
	})
	api.Get("/me", protected, controller.CurrentUser)

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("server listening", "addr", cfg.HTTPAddr)

	WaitExitSignal()

	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func openDB(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := auth.CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// errorHandler is the single top-level handler: expected fiber errors
// keep their status, everything else is logged and reported as a
// generic 500 with no internals exposed.
func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"success": false,
				"message": fe.Message,
			})
		}

		logger.Error("unhandled error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error",
		})
	}
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
