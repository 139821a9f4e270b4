package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lunara-app/lunara/internal/models"
)

func TestRegisterLoginProfileRoundTrip(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, &fakeGenerator{reply: "ok"})

	response := postJSON(t, app, "/api/users/register", "", map[string]string{
		"name":     "A",
		"email":    "a@x.com",
		"password": "p",
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d", response.StatusCode)
	}
	registered := struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Token string `json:"token"`
	}{}
	decodeBody(t, response, &registered)
	if registered.Name != "A" || registered.Email != "a@x.com" || registered.Token == "" {
		t.Fatalf("unexpected register payload: %+v", registered)
	}

	response = postJSON(t, app, "/api/users/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "p",
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", response.StatusCode)
	}
	loggedIn := struct {
		ID    uint   `json:"id"`
		Token string `json:"token"`
	}{}
	decodeBody(t, response, &loggedIn)
	if loggedIn.ID != registered.ID {
		t.Fatalf("login resolved a different user: %d != %d", loggedIn.ID, registered.ID)
	}

	response = getJSON(t, app, "/api/users/profile", loggedIn.Token)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("profile returned %d", response.StatusCode)
	}
	profile := struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}{}
	decodeBody(t, response, &profile)
	if profile.ID != registered.ID || profile.Email != "a@x.com" {
		t.Fatalf("token subject did not resolve back to the registered user: %+v", profile)
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, &fakeGenerator{reply: "ok"})

	response := postJSON(t, app, "/api/users/register", "", map[string]string{
		"email": "a@x.com",
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t, &fakeGenerator{reply: "ok"})
	registerTestUser(t, app, "A", "dup@example.com", "secret")

	response := postJSON(t, app, "/api/users/register", "", map[string]string{
		"name":     "B",
		"email":    "dup@example.com",
		"password": "other",
	})
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", response.StatusCode)
	}
	response.Body.Close()

	var count int64
	if err := database.Model(&models.User{}).Where("email = ?", "dup@example.com").Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one user, got %d", count)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, &fakeGenerator{reply: "ok"})
	registerTestUser(t, app, "A", "auth@example.com", "right-password")

	response := postJSON(t, app, "/api/users/login", "", map[string]string{
		"email":    "auth@example.com",
		"password": "wrong-password",
	})
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", response.StatusCode)
	}
	response.Body.Close()

	response = postJSON(t, app, "/api/users/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, &fakeGenerator{reply: "ok"})

	for _, header := range []string{"", "Bearer", "Bearer not-a-token", "Basic abc"} {
		request := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
		if header != "" {
			request.Header.Set("Authorization", header)
		}
		response, err := app.Test(request, -1)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, response.StatusCode)
		}
		response.Body.Close()
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, &fakeGenerator{reply: "ok"})
	registerTestUser(t, app, "A", "expired@example.com", "secret")

	// Same subject and secret as a live token, but issued in the past and
	// already beyond its fixed lifetime.
	issued := time.Now().Add(-31 * 24 * time.Hour)
	claims := authClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(authTokenTTL)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	response := getJSON(t, app, "/api/users/profile", expired)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an expired token, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func TestTokenForDeletedUserIsRejected(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t, &fakeGenerator{reply: "ok"})
	token := registerTestUser(t, app, "A", "gone@example.com", "secret")

	if err := database.Where("email = ?", "gone@example.com").Delete(&models.User{}).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	response := getJSON(t, app, "/api/users/profile", token)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 once the subject no longer resolves, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func TestUserStoreOutageIsNotReportedAsUnauthorized(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t, &fakeGenerator{reply: "ok"})
	token := registerTestUser(t, app, "A", "outage@example.com", "secret")

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close sql db: %v", err)
	}

	response := getJSON(t, app, "/api/users/profile", token)
	if response.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the user store is down, got %d", response.StatusCode)
	}
	response.Body.Close()
}

func TestTamperedTokenIsRejected(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, &fakeGenerator{reply: "ok"})

	token := registerTestUser(t, app, "A", "forge@example.com", "secret")
	forged := token[:len(token)-2]

	response := getJSON(t, app, "/api/users/profile", forged)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a tampered token, got %d", response.StatusCode)
	}
	response.Body.Close()
}
