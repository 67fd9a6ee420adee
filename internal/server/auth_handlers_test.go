package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnect/internal/config"
	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Post{},
		&models.Like{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

// newTestServer wires a Server against sqlite without the metrics middleware
// so tests do not register duplicate Prometheus collectors.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	db := setupHandlerTestDB(t)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	s := &Server{
		config: &config.Config{
			JWTSecret: "test-secret-key-for-auth-tests",
			Env:       "test",
		},
		db:             db,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		postRepo:       postRepo,
		postService:    service.NewPostService(postRepo),
		profileService: service.NewProfileService(profileRepo),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func postJSON(t *testing.T, app *fiber.App, url string, payload any, token string) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func registerUser(t *testing.T, app *fiber.App, name, email string) (token string, userID uint) {
	t.Helper()
	resp := postJSON(t, app, "/api/users/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	}, "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	require.NotZero(t, body.User.ID)
	return body.Token, body.User.ID
}

func TestRegisterLoginCurrentFlow(t *testing.T) {
	t.Parallel()

	_, app := newTestServer(t)

	token, userID := registerUser(t, app, "Ada Lovelace", "ada@example.com")

	// Password hash never leaks through JSON.
	resp := postJSON(t, app, "/api/users/login", map[string]string{
		"email":    "ada@example.com",
		"password": "password123",
	}, "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.NotContains(t, string(raw["user"]), "password")

	req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	currentResp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = currentResp.Body.Close() }()
	require.Equal(t, http.StatusOK, currentResp.StatusCode)

	var user models.User
	require.NoError(t, json.NewDecoder(currentResp.Body).Decode(&user))
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "Ada Lovelace", user.Name)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	_, app := newTestServer(t)
	registerUser(t, app, "Ada", "ada@example.com")

	resp := postJSON(t, app, "/api/users/register", map[string]string{
		"name":     "Imposter",
		"email":    "ada@example.com",
		"password": "password123",
	}, "")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegister_FieldValidation(t *testing.T) {
	t.Parallel()

	_, app := newTestServer(t)

	resp := postJSON(t, app, "/api/users/register", map[string]string{
		"name":     "A",
		"email":    "not-an-email",
		"password": "123",
	}, "")
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errBody := decodeErrorBody(t, resp)
	assert.Equal(t, models.CodeValidation, errBody.Code)
	assert.Contains(t, errBody.Fields, "name")
	assert.Contains(t, errBody.Fields, "email")
	assert.Contains(t, errBody.Fields, "password")
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	_, app := newTestServer(t)
	registerUser(t, app, "Ada", "ada@example.com")

	resp := postJSON(t, app, "/api/users/login", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	}, "")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	_, app := newTestServer(t)

	resp := postJSON(t, app, "/api/users/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	}, "")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_RejectsBadTokens(t *testing.T) {
	t.Parallel()

	s, app := newTestServer(t)

	forge := func(claims jwt.MapClaims, secret string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		return signed
	}
	now := time.Now()
	base := jwt.MapClaims{
		"sub": "1",
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "No Token", token: ""},
		{name: "Garbage Token", token: "not.a.jwt"},
		{
			name: "Wrong Secret",
			token: forge(jwt.MapClaims{
				"sub": "1", "iss": tokenIssuer, "aud": tokenAudience,
				"exp": now.Add(time.Hour).Unix(),
			}, "some-other-secret"),
		},
		{
			name: "Wrong Issuer",
			token: forge(jwt.MapClaims{
				"sub": "1", "iss": "someone-else", "aud": tokenAudience,
				"exp": now.Add(time.Hour).Unix(),
			}, s.config.JWTSecret),
		},
		{
			name: "Wrong Audience",
			token: forge(jwt.MapClaims{
				"sub": "1", "iss": tokenIssuer, "aud": "other-client",
				"exp": now.Add(time.Hour).Unix(),
			}, s.config.JWTSecret),
		},
		{
			name: "Expired",
			token: forge(jwt.MapClaims{
				"sub": "1", "iss": tokenIssuer, "aud": tokenAudience,
				"exp": now.Add(-time.Hour).Unix(),
			}, s.config.JWTSecret),
		},
		{
			name: "Non Numeric Subject",
			token: forge(func() jwt.MapClaims {
				c := jwt.MapClaims{}
				for k, v := range base {
					c[k] = v
				}
				c["sub"] = "ada"
				return c
			}(), s.config.JWTSecret),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
