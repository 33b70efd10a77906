package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/sentinel/sentinel-backend/internal/api"
	"github.com/sentinel/sentinel-backend/internal/config"
	"github.com/sentinel/sentinel-backend/internal/dataset"
	"github.com/sentinel/sentinel-backend/internal/prompt"
	"github.com/sentinel/sentinel-backend/internal/providers/openrouter"
	"github.com/sentinel/sentinel-backend/internal/services"
	"github.com/sentinel/sentinel-backend/internal/session"
	"github.com/sentinel/sentinel-backend/internal/stats"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// Load the dataset; a missing file is a startup precondition failure
	table, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		log.Fatal("Failed to load dataset: ", err)
	}
	log.WithFields(logrus.Fields{
		"rows":    table.NumRows(),
		"columns": len(table.Columns),
		"path":    cfg.Dataset.Path,
	}).Info("Dataset loaded")

	// Compute the statistics bundle and system prompt once; both are
	// immutable for the rest of the process lifetime
	bundle := stats.Compute(table)
	systemPrompt := prompt.Build(bundle)
	log.WithField("aggregates", len(bundle.Keys())).Info("Statistics computed")

	store, err := newHistoryStore(cfg.Session)
	if err != nil {
		log.Fatal("Failed to initialize session store: ", err)
	}

	provider, err := openrouter.NewProvider(cfg.LLM)
	if err != nil {
		log.Fatal("Failed to initialize completion provider: ", err)
	}

	chat := services.NewChatService(
		provider,
		store,
		systemPrompt,
		cfg.LLM.Model,
		cfg.LLM.MaxTokens,
		cfg.Chat.HistoryLimit,
		log,
	)
	svc := services.NewServices(chat, bundle)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Sentinel Backend",
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	api.SetupRoutes(app, svc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.WithField("addr", addr).Info("Sentinel Backend starting")
	if err := app.Listen(addr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func newHistoryStore(cfg config.SessionConfig) (session.HistoryStore, error) {
	switch cfg.Store {
	case "sqlite":
		return session.NewSQLiteStore(cfg.SQLitePath)
	default:
		return session.NewMemoryStore(), nil
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
