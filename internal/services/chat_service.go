package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lunara-app/lunara/internal/ai"
	"github.com/lunara-app/lunara/internal/models"
)

var ErrEmptyMessage = errors.New("empty message")

const (
	// HistoryLimit caps a single history read; the log itself is unbounded.
	HistoryLimit = 200

	DefaultAITimeout = 60 * time.Second

	voiceTurnInstruction = "Listen to this audio and respond."
)

type MessageRepository interface {
	Append(message *models.Message) error
	ListByUserNewestFirst(userID uint, limit int) ([]models.Message, error)
}

type CycleContextSource interface {
	FindLatestByUser(userID uint) (models.CycleEntry, bool, error)
}

// ChatService runs the turn lifecycle: persist the user's side, assemble
// cycle context, call the generator, persist the reply. The user-side write
// is deliberately not rolled back when a later step fails.
type ChatService struct {
	messages  MessageRepository
	cycles    CycleContextSource
	generator ai.Generator
	aiTimeout time.Duration
}

func NewChatService(messages MessageRepository, cycles CycleContextSource, generator ai.Generator, aiTimeout time.Duration) *ChatService {
	if aiTimeout <= 0 {
		aiTimeout = DefaultAITimeout
	}
	return &ChatService{
		messages:  messages,
		cycles:    cycles,
		generator: generator,
		aiTimeout: aiTimeout,
	}
}

// HandleTextTurn answers one text prompt. Blank input is rejected before
// anything is persisted or the generator is reached.
func (service *ChatService) HandleTextTurn(ctx context.Context, userID uint, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	if err := service.persistMessage(userID, text, false); err != nil {
		return "", fmt.Errorf("persist user message: %w", err)
	}

	reply, err := service.invokeGenerator(ctx, userID, func(ctx context.Context, systemInstruction string) (string, error) {
		return service.generator.GenerateText(ctx, systemInstruction, text)
	})
	if err != nil {
		return "", err
	}

	if err := service.persistMessage(userID, reply, true); err != nil {
		return "", fmt.Errorf("persist bot message: %w", err)
	}
	return reply, nil
}

// HandleVoiceTurn answers one spoken prompt. A fixed marker stands in for a
// transcript on the user side of the log.
func (service *ChatService) HandleVoiceTurn(ctx context.Context, userID uint, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", ErrEmptyMessage
	}
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "application/octet-stream"
	}

	if err := service.persistMessage(userID, models.VoiceMessageMarker, false); err != nil {
		return "", fmt.Errorf("persist voice marker: %w", err)
	}

	reply, err := service.invokeGenerator(ctx, userID, func(ctx context.Context, systemInstruction string) (string, error) {
		return service.generator.GenerateFromAudio(ctx, systemInstruction, voiceTurnInstruction, audio, mimeType)
	})
	if err != nil {
		return "", err
	}

	if err := service.persistMessage(userID, reply, true); err != nil {
		return "", fmt.Errorf("persist bot message: %w", err)
	}
	return reply, nil
}

// History returns the owner's messages newest-first. Limits above
// HistoryLimit are clamped; zero or negative means the full cap.
func (service *ChatService) History(userID uint, limit int) ([]models.Message, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}
	return service.messages.ListByUserNewestFirst(userID, limit)
}

func (service *ChatService) invokeGenerator(ctx context.Context, userID uint, generate func(ctx context.Context, systemInstruction string) (string, error)) (string, error) {
	latest, found, err := service.cycles.FindLatestByUser(userID)
	if err != nil {
		return "", fmt.Errorf("load cycle context: %w", err)
	}
	systemInstruction := buildSystemInstruction(CycleContextFact(latest, found))

	generateCtx, cancel := context.WithTimeout(ctx, service.aiTimeout)
	defer cancel()

	reply, err := generate(generateCtx, systemInstruction)
	if err != nil {
		// Provider detail stays in the log; callers surface a generic error.
		log.Printf("generator call failed for user %d: %v", userID, err)
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return reply, nil
}

func (service *ChatService) persistMessage(userID uint, text string, isBot bool) error {
	message := models.Message{
		UserID:    userID,
		Text:      text,
		IsBot:     isBot,
		CreatedAt: time.Now(),
	}
	return service.messages.Append(&message)
}

func buildSystemInstruction(contextFact string) string {
	return "You are a caring Personal Assistant. HEALTH DATA: " + contextFact
}
