// Package ai wraps the generative-AI provider behind a narrow interface so
// the conversation orchestrator and its tests never touch the SDK directly.
package ai

import "context"

// Generator produces assistant replies. Implementations must treat the
// system instruction as authoritative over the prompt and return a non-empty
// reply or an error.
type Generator interface {
	// GenerateText answers a plain text prompt.
	GenerateText(ctx context.Context, systemInstruction string, prompt string) (string, error)

	// GenerateFromAudio answers a spoken prompt delivered as raw audio bytes.
	GenerateFromAudio(ctx context.Context, systemInstruction string, instruction string, audio []byte, mimeType string) (string, error)
}
