package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roommates/core/internal/adapters/randomuser"
	"github.com/roommates/core/internal/adapters/repository"
	"github.com/roommates/core/internal/application/services"
	"github.com/roommates/core/internal/domain/entities"
	"github.com/roommates/core/internal/infrastructure/config"
	"github.com/roommates/core/internal/infrastructure/logger"
)

const storePath = "roommates.json"

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "Roommates", Environment: "test"},
		Server: config.ServerConfig{Port: 3000, Host: "localhost", WriteTimeout: 5 * time.Second},
		Store:  config.StoreConfig{Path: storePath},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: "*",
		},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

// newUpstream serves a distinct person on every call
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"results":[{"name":{"first":"First%d","last":"Last%d"},"dob":{"age":%d},"phone":"555-%04d"}]}`,
			n, n, 20+n%50, n)
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testApp struct {
	fs      afero.Fs
	handler http.Handler
}

func newTestApp(t *testing.T, fs afero.Fs, upstreamURL string) *testApp {
	t.Helper()
	return newTestAppWithConfig(t, testConfig(), fs, upstreamURL)
}

func newTestAppWithConfig(t *testing.T, cfg *config.Config, fs afero.Fs, upstreamURL string) *testApp {
	t.Helper()
	repo := repository.NewFileRoommateRepository(fs, cfg.Store.Path)
	svc := services.NewRoommateService(repo, randomuser.NewClient(upstreamURL), logger.NewNop())

	srv, err := New(cfg, svc, logger.NewNop())
	require.NoError(t, err)
	return &testApp{fs: fs, handler: srv.Handler()}
}

func (a *testApp) do(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) list(t *testing.T) []entities.Roommate {
	t.Helper()
	rec := a.do(http.MethodGet, "/roommate")
	require.Equal(t, http.StatusOK, rec.Code)
	var roommates []entities.Roommate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roommates))
	return roommates
}

func (a *testApp) create(t *testing.T) entities.Roommate {
	t.Helper()
	rec := a.do(http.MethodPost, "/roommate")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var roommate entities.Roommate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roommate))
	return roommate
}

func TestServer_RoommateLifecycle(t *testing.T) {
	app := newTestApp(t, afero.NewMemMapFs(), newUpstream(t).URL)

	rec := app.do(http.MethodGet, "/roommate")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	first := app.create(t)
	assert.Equal(t, "First1 Last1", first.Name)
	assert.Equal(t, []entities.Roommate{first}, app.list(t))

	second := app.create(t)
	roommates := app.list(t)
	require.Len(t, roommates, 2)
	assert.Equal(t, first, roommates[0])
	assert.Equal(t, second, roommates[1])

	exists, err := afero.Exists(app.fs, storePath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestServer_UniqueIDs(t *testing.T) {
	app := newTestApp(t, afero.NewMemMapFs(), newUpstream(t).URL)

	const n = 100
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		r := app.create(t)
		seen[r.ID] = struct{}{}
	}

	assert.Len(t, seen, n)
	assert.Len(t, app.list(t), n)
}

func TestServer_DefaultConfigSequentialCreates(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	app := newTestAppWithConfig(t, cfg, afero.NewMemMapFs(), newUpstream(t).URL)

	const n = 100
	for i := 0; i < n; i++ {
		app.create(t)
	}

	assert.Len(t, app.list(t), n)
}

func TestServer_RateLimitWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimitRequests = 2
	cfg.Security.RateLimitWindow = time.Hour
	app := newTestAppWithConfig(t, cfg, afero.NewMemMapFs(), newUpstream(t).URL)

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/roommate").Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/roommate").Code)
	assert.Equal(t, http.StatusTooManyRequests, app.do(http.MethodGet, "/roommate").Code)
}

func TestServer_Home(t *testing.T) {
	app := newTestApp(t, afero.NewMemMapFs(), newUpstream(t).URL)

	rec := app.do(http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<ul class="list-group mt-3">`)

	created := app.create(t)
	rec = app.do(http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.Name)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
}

func TestServer_MalformedStore(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, storePath, []byte(`{"broken":`), 0o644))
	app := newTestApp(t, fs, newUpstream(t).URL)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodGet, "/roommate"},
		{http.MethodPost, "/roommate"},
	} {
		rec := app.do(tc.method, tc.path)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.method+" "+tc.path)
		assert.Equal(t, "Internal server error", rec.Body.String())
	}

	data, err := afero.ReadFile(fs, storePath)
	require.NoError(t, err)
	assert.Equal(t, `{"broken":`, string(data))

	assert.Equal(t, http.StatusServiceUnavailable, app.do(http.MethodGet, "/ready").Code)
}

func TestServer_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusBadGateway)
	}))
	t.Cleanup(upstream.Close)
	app := newTestApp(t, afero.NewMemMapFs(), upstream.URL)

	rec := app.do(http.MethodPost, "/roommate")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", rec.Body.String())
	exists, err := afero.Exists(app.fs, storePath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestServer_Operational(t *testing.T) {
	app := newTestApp(t, afero.NewMemMapFs(), newUpstream(t).URL)

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/ready").Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/missing").Code)

	app.create(t)
	rec := app.do(http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "roommates_created_total 1")
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="unmatched",status="404"} 1`)
	assert.NotContains(t, rec.Body.String(), `path="",status="200"`)
}
