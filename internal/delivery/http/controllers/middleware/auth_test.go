package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CourseHub/internal/delivery/http/controllers/middleware"
	"CourseHub/internal/models"
	"CourseHub/internal/service/auth"
	"CourseHub/pkg/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

func protectedRouter(t *testing.T, adminOnly bool) *gin.Engine {
	t.Helper()
	manager := auth.NewJWTManager(testSecret, "course-catalog", time.Hour)
	service := auth.NewAuthService(logger.NewDiscard(), manager, nil)
	provider := middleware.NewAuthProvider(logger.NewDiscard(), service)

	whoami := func(c *gin.Context) {
		claims := middleware.ClaimsFrom(c)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email, "isAdmin": claims.IsAdmin})
	}

	r := gin.New()
	group := r.Group("", provider.Auth)
	if adminOnly {
		group = group.Group("", middleware.RequireAdmin())
	}
	group.GET("/whoami", whoami)
	return r
}

func signedToken(t *testing.T, ttl time.Duration, isAdmin bool) string {
	t.Helper()
	manager := auth.NewJWTManager(testSecret, "course-catalog", ttl)
	token, err := manager.Generate(&models.User{ID: 8, Email: "user@example.com", IsAdmin: isAdmin})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return token
}

func doAuthed(t *testing.T, r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingToken(t *testing.T) {
	w := doAuthed(t, protectedRouter(t, false), "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	r := protectedRouter(t, false)

	for _, header := range []string{
		"Bearer not.a.token",
		"garbage",
	} {
		w := doAuthed(t, r, header)
		if w.Code != http.StatusForbidden {
			t.Fatalf("%q: expected 403, got %d", header, w.Code)
		}
	}
}

func TestAuth_WrongSignature(t *testing.T) {
	other := auth.NewJWTManager("another-secret", "course-catalog", time.Hour)
	token, err := other.Generate(&models.User{ID: 8, Email: "user@example.com"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	w := doAuthed(t, protectedRouter(t, false), "Bearer "+token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signedToken(t, -time.Minute, false)

	w := doAuthed(t, protectedRouter(t, false), "Bearer "+token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.Error == "" {
		t.Fatalf("expected an error message for the expired token")
	}
}

func TestAuth_ValidToken(t *testing.T) {
	r := protectedRouter(t, false)
	token := signedToken(t, time.Hour, false)

	// both header shapes are accepted
	for _, header := range []string{"Bearer " + token, token} {
		w := doAuthed(t, r, header)
		if w.Code != http.StatusOK {
			t.Fatalf("%q: expected 200, got %d: %s", header, w.Code, w.Body.String())
		}

		var body struct {
			Email   string `json:"email"`
			IsAdmin bool   `json:"isAdmin"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
		if body.Email != "user@example.com" || body.IsAdmin {
			t.Fatalf("claims did not reach the handler: %+v", body)
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	r := protectedRouter(t, true)

	w := doAuthed(t, r, "Bearer "+signedToken(t, time.Hour, false))
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin: expected 403, got %d", w.Code)
	}

	w = doAuthed(t, r, "Bearer "+signedToken(t, time.Hour, true))
	if w.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequestID_SetsHeader(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString(middleware.RequestIDCtx)})
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-Id")
	if id == "" {
		t.Fatalf("expected an X-Request-Id header")
	}

	var body struct {
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.RequestID != id {
		t.Fatalf("header and context ids differ: %s != %s", id, body.RequestID)
	}
}
