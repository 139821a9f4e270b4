package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lunara-app/lunara/internal/db"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

// fakeGenerator is a deterministic stand-in for the Gemini client.
type fakeGenerator struct {
	reply      string
	err        error
	calls      int
	lastSystem string
	lastPrompt string
	lastMime   string
	lastAudio  []byte
}

func (generator *fakeGenerator) GenerateText(ctx context.Context, systemInstruction string, prompt string) (string, error) {
	generator.calls++
	generator.lastSystem = systemInstruction
	generator.lastPrompt = prompt
	return generator.reply, generator.err
}

func (generator *fakeGenerator) GenerateFromAudio(ctx context.Context, systemInstruction string, instruction string, audio []byte, mimeType string) (string, error) {
	generator.calls++
	generator.lastSystem = systemInstruction
	generator.lastPrompt = instruction
	generator.lastAudio = audio
	generator.lastMime = mimeType
	return generator.reply, generator.err
}

func newTestApp(t *testing.T, generator *fakeGenerator) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "lunara-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, testSecretKey, generator, time.Minute)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func postJSON(t *testing.T, app *fiber.App, path string, token string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return response
}

func getJSON(t *testing.T, app *fiber.App, path string, token string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func registerTestUser(t *testing.T, app *fiber.App, name string, email string, password string) string {
	t.Helper()

	response := postJSON(t, app, "/api/users/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d", response.StatusCode)
	}

	payload := struct {
		Token string `json:"token"`
	}{}
	decodeBody(t, response, &payload)
	if payload.Token == "" {
		t.Fatal("register returned an empty token")
	}
	return payload.Token
}
