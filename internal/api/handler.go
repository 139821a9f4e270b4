package api

import (
	"time"

	"github.com/lunara-app/lunara/internal/ai"
	"github.com/lunara-app/lunara/internal/db"
	"github.com/lunara-app/lunara/internal/services"
	"gorm.io/gorm"
)

const (
	// Tokens are valid for a fixed 30 days from issuance; there is no
	// refresh path, re-login is the only recovery.
	authTokenTTL = 30 * 24 * time.Hour

	contextUserKey = "currentUser"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	repositories *db.Repositories
	chatService  *services.ChatService
	cycleService *services.CycleService
	loginLimiter *attemptLimiter
}

func NewHandler(database *gorm.DB, secretKey string, generator ai.Generator, aiTimeout time.Duration) *Handler {
	repositories := db.NewRepositories(database)
	return &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		repositories: repositories,
		chatService:  services.NewChatService(repositories.Messages, repositories.Cycles, generator, aiTimeout),
		cycleService: services.NewCycleService(repositories.Cycles),
		loginLimiter: newAttemptLimiter(),
	}
}
