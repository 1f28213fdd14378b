package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.GET("/probe", handlers...)
	return r
}

func token(t *testing.T, subject string, role domain.Role, tableID string, ttl time.Duration) string {
	t.Helper()
	tok, _, err := utils.GenerateJWT(subject, string(role), tableID, testSecret, ttl, "test")
	require.NoError(t, err)
	return tok
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_StoresActor(t *testing.T) {
	var got domain.Actor
	r := newRouter(AuthMiddleware(testSecret), func(c *gin.Context) {
		got, _ = GetActorFromContext(c)
		c.Status(http.StatusNoContent)
	})

	w := do(r, "Bearer "+token(t, "team-1", domain.RoleTeam, "table-1", time.Hour))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, domain.Actor{ID: "team-1", Role: domain.RoleTeam, TableID: "table-1"}, got)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	r := newRouter(AuthMiddleware(testSecret), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "garbage token", header: "Bearer abc.def.ghi"},
		{name: "expired", header: "Bearer " + token(t, "team-1", domain.RoleTeam, "table-1", -time.Minute)},
		{name: "team without table", header: "Bearer " + token(t, "team-1", domain.RoleTeam, "", time.Hour)},
		{name: "unknown role", header: "Bearer " + token(t, "x", domain.Role("root"), "", time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := newRouter(AuthMiddleware(testSecret), RequireRole(domain.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, do(r, "Bearer "+token(t, "admin", domain.RoleAdmin, "", time.Hour)).Code)
	assert.Equal(t, http.StatusForbidden, do(r, "Bearer "+token(t, "table-1", domain.RoleTable, "table-1", time.Hour)).Code)
}

func TestRateLimit(t *testing.T) {
	lim, err := NewLoginLimiter("2-M")
	require.NoError(t, err)
	r := newRouter(RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, do(r, "").Code)
	assert.Equal(t, http.StatusNoContent, do(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "").Code)

	_, err = NewLoginLimiter("lots")
	assert.Error(t, err)
}

func TestGetLoggerFromCtx_Fallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, slog.Default(), GetLoggerFromCtx(req.Context()))

	custom := slog.New(slog.NewTextHandler(httptest.NewRecorder(), nil))
	assert.Equal(t, custom, GetLoggerFromCtx(WithLogger(req.Context(), custom)))
}
