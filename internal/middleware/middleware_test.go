package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/galaxy-cinema-booking/internal/config"
	"github.com/iliyamo/galaxy-cinema-booking/internal/utils"
)

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func TestAdminGuard(t *testing.T) {
	const secret = "s3cret"
	admin, err := utils.NewAccessToken(secret, "admin", RoleAdmin, 5)
	require.NoError(t, err)
	viewer, err := utils.NewAccessToken(secret, "bob", "VIEWER", 5)
	require.NoError(t, err)
	forged, err := utils.NewAccessToken("other", "admin", RoleAdmin, 5)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{"disabled guard", "", "", http.StatusOK},
		{"missing token", secret, "", http.StatusUnauthorized},
		{"not bearer", secret, "Basic abc", http.StatusUnauthorized},
		{"wrong signature", secret, "Bearer " + forged.Token, http.StatusUnauthorized},
		{"wrong role", secret, "Bearer " + viewer.Token, http.StatusForbidden},
		{"admin", secret, "Bearer " + admin.Token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/api/bookings", okHandler, AdminGuard(tt.secret))

			req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger())
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, RequestID(c)) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	rid := rec.Header().Get(echo.HeaderXRequestID)
	assert.Len(t, rid, 36)
	assert.Equal(t, rid, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(echo.HeaderXRequestID, "given-id")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "given-id", rec.Header().Get(echo.HeaderXRequestID))
}

func TestRecover(t *testing.T) {
	e := echo.New()
	e.Use(Recover())
	e.GET("/boom", func(echo.Context) error { panic("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestWithoutRedisMiddlewarePassesThrough(t *testing.T) {
	e := echo.New()
	cache := NewResponseCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil)
	limit := NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil)
	e.GET("/api/movies", okHandler, cache.Middleware(), limit)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
	cache.Purge(httptest.NewRequest(http.MethodGet, "/", nil).Context())
}

func TestCachePayloadCodec(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	raw, err := encodePayload(http.StatusOK, hdr, []byte(`[1,2]`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(raw)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, `[1,2]`, string(body))

	_, _, _, ok = decodePayload(raw[:6])
	assert.False(t, ok)
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/bookings")

	key := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}, c)
	assert.Equal(t, "rl:ip:10.0.0.7:route:POST /api/bookings", key)

	key = buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c)
	assert.Equal(t, "rl:ip:10.0.0.7", key)

	key = buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "route"}, c)
	assert.Equal(t, "rl:route:POST /api/bookings", key)
}

func TestAdminGuardExposesSubject(t *testing.T) {
	const secret = "s3cret"
	tok, err := utils.NewAccessToken(secret, "admin", RoleAdmin, 5)
	require.NoError(t, err)

	e := echo.New()
	e.GET("/api/bookings", func(c echo.Context) error {
		return c.String(http.StatusOK, AdminSubject(c))
	}, AdminGuard(secret))
	e.GET("/api/seatmap", func(c echo.Context) error {
		return c.String(http.StatusOK, AdminSubject(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "admin", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/seatmap", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
