package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/bizness/internal/assistant"
	"github.com/Simplici0/bizness/internal/auth"
	"github.com/Simplici0/bizness/internal/config"
	"github.com/Simplici0/bizness/internal/db"
	"github.com/Simplici0/bizness/internal/migrations"
	"github.com/Simplici0/bizness/internal/ocr"
	"github.com/Simplici0/bizness/internal/store"
	"github.com/Simplici0/bizness/internal/validation"
)

type testApp struct {
	srv     *server
	handler http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "server-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = migrations.Up(ctx, database)
	require.NoError(t, err)

	st, err := store.New(database)
	require.NoError(t, err)
	authSvc, err := auth.NewService(database, "session-secret", "jwt-secret")
	require.NoError(t, err)

	srv := &server{
		auth:    authSvc,
		store:   st,
		ocr:     ocr.NewService(ocr.NewMockScanner(rand.New(rand.NewPCG(7, 11)), 0), st),
		invoker: assistant.MockInvoker{},
		origins: []string{"*"},
	}
	return &testApp{srv: srv, handler: srv.routes(zerolog.Nop())}
}

// register creates an account and returns its bearer token.
func (a *testApp) register(t *testing.T, name, email, role string) string {
	t.Helper()

	u, err := a.srv.auth.Register(context.Background(), validation.Registration{Name: name, Email: email, Password: "password123"}, role)
	require.NoError(t, err)
	token, err := a.srv.auth.IssueToken(u)
	require.NoError(t, err)
	return token
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) form(t *testing.T, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) page(t *testing.T, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)

	app.do(t, http.MethodGet, "/healthz", "", nil)
	rec := app.do(t, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bizness_http_requests_total")
}

func TestRunRefusesEmptySessionSecretOutsideDev(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "never-opened.db")
	err := run(context.Background(), config.Config{AppEnv: "production", DBPath: dbPath, Port: "0"}, zerolog.Nop())

	require.ErrorIs(t, err, errNoSessionSecret)
	assert.NoFileExists(t, dbPath)
}

func TestResolveSecrets(t *testing.T) {
	cfg, err := resolveSecrets(config.Config{AppEnv: "production", SessionSecret: "s", JWTSecret: "j"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "s", cfg.SessionSecret)
	assert.Equal(t, "j", cfg.JWTSecret)

	first, err := resolveSecrets(config.Config{AppEnv: "development"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, first.SessionSecret, 64)
	assert.Equal(t, first.SessionSecret, first.JWTSecret)

	second, err := resolveSecrets(config.Config{AppEnv: "development"}, zerolog.Nop())
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionSecret, second.SessionSecret)
}
