package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

var errEmptyReply = errors.New("model returned no text")

// Gemini talks to the Gemini API. One client is created at startup and shared
// by all requests; the SDK handles its own connection pooling.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey string, model string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("missing Gemini API key")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) GenerateText(ctx context.Context, systemInstruction string, prompt string) (string, error) {
	return g.generate(ctx, systemInstruction, genai.Text(prompt))
}

func (g *Gemini) GenerateFromAudio(ctx context.Context, systemInstruction string, instruction string, audio []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(instruction),
		genai.NewPartFromBytes(audio, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	return g.generate(ctx, systemInstruction, contents)
}

func (g *Gemini) generate(ctx context.Context, systemInstruction string, contents []*genai.Content) (string, error) {
	config := &genai.GenerateContentConfig{}
	if strings.TrimSpace(systemInstruction) != "" {
		config.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(response.Text())
	if text == "" {
		return "", errEmptyReply
	}
	return text, nil
}
