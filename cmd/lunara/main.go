package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/lunara-app/lunara/internal/ai"
	"github.com/lunara-app/lunara/internal/api"
	"github.com/lunara-app/lunara/internal/db"
)

func main() {
	_ = godotenv.Load()

	secretKey, err := resolveSecretKey()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		log.Fatal("config error: GEMINI_API_KEY is required")
	}

	dbPath := getEnv("DB_PATH", filepath.Join("data", "lunara.db"))
	port := getEnv("PORT", "8080")
	model := getEnv("AI_MODEL", ai.DefaultModel)
	aiTimeout := resolveAITimeout(getEnv("AI_TIMEOUT", "60s"))

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	generator, err := ai.NewGemini(context.Background(), apiKey, model)
	if err != nil {
		log.Fatalf("generator init failed: %v", err)
	}

	handler := api.NewHandler(database, secretKey, generator, aiTimeout)

	app := fiber.New(fiber.Config{
		AppName:               "Lunara",
		DisableStartupMessage: true,
		BodyLimit:             25 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	// Open CORS matches the reference mobile deployment; tighten per origin
	// before exposing this beyond the app.
	app.Use(cors.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Lunara listening on http://0.0.0.0:%s (db: %s, model: %s)", port, dbPath, model)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return "", errors.New("JWT_SECRET is required")
	}
	if secret == "change_me_in_production" || strings.Contains(secret, "replace_with") {
		return "", errors.New("JWT_SECRET still uses a placeholder value")
	}
	if len(secret) < 32 {
		return "", errors.New("JWT_SECRET must be at least 32 characters")
	}
	return secret, nil
}

func resolveAITimeout(raw string) time.Duration {
	timeout, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || timeout <= 0 {
		log.Printf("invalid AI_TIMEOUT %q, falling back to 60s", raw)
		return 60 * time.Second
	}
	return timeout
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
