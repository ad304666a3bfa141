package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"socialite/internal/models"
	"socialite/internal/router"
	"socialite/pkg/config"
	"socialite/validators"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret-key"

// newTestServer builds a full echo app over a fresh in-memory SQLite DB.
// The pool is pinned to one connection so every statement sees the same
// memory database.
func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	e := echo.New()
	e.Validator = validators.NewValidator()
	router.SetupRoutes(e, db, &config.Config{JWTSecret: testJWTSecret})

	return e, db
}

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func mustUnmarshal(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("bad response %s: %v", data, err)
	}
}

// doJSON performs a request with an optional bearer token and JSON body
func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// registerUser registers an account and returns its token and ID
func registerUser(t *testing.T, e *echo.Echo, username string) (string, uint) {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"password123"}`, username, username)
	rec := doJSON(e, http.MethodPost, "/api/v1/auth/register", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: got status %d, body %s", username, rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("register %s: bad response: %v", username, err)
	}
	if resp.Token == "" {
		t.Fatalf("register %s: empty token", username)
	}
	return resp.Token, resp.User.ID
}

// createPost creates a post for the given token and returns the post ID
func createPost(t *testing.T, e *echo.Echo, token, title, content string) uint {
	t.Helper()

	body := fmt.Sprintf(`{"title":%q,"content":%q}`, title, content)
	rec := doJSON(e, http.MethodPost, "/api/v1/posts", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: got status %d, body %s", rec.Code, rec.Body.String())
	}

	var post models.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("create post: bad response: %v", err)
	}
	return post.ID
}

// feedPosts fetches /feed for the token and returns the posts
func feedPosts(t *testing.T, e *echo.Echo, token string) []models.Post {
	t.Helper()

	rec := doJSON(e, http.MethodGet, "/api/v1/feed", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get feed: got status %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Posts []models.Post `json:"posts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("get feed: bad response: %v", err)
	}
	return resp.Data.Posts
}

// listNotifications fetches /notifications for the token
func listNotifications(t *testing.T, e *echo.Echo, token string) []models.Notification {
	t.Helper()

	rec := doJSON(e, http.MethodGet, "/api/v1/notifications", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get notifications: got status %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Notifications []models.Notification `json:"notifications"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("get notifications: bad response: %v", err)
	}
	return resp.Data.Notifications
}

// unreadCount fetches /notifications/unread-count for the token
func unreadCount(t *testing.T, e *echo.Echo, token string) int64 {
	t.Helper()

	rec := doJSON(e, http.MethodGet, "/api/v1/notifications/unread-count", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get unread count: got status %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		UnreadCount int64 `json:"unread_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("get unread count: bad response: %v", err)
	}
	return resp.UnreadCount
}
