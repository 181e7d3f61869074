package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog_shop/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(m *session.Manager) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Metrics(), LoadSession(m))
	r.GET("/public", func(c *gin.Context) {
		if s := CurrentSession(c); s != nil {
			c.String(http.StatusOK, "hello "+s.Username)
			return
		}
		c.String(http.StatusOK, "hello anonymous")
	})
	admin := r.Group("/admin", RequireAuth())
	admin.GET("", func(c *gin.Context) { c.String(http.StatusOK, "dashboard") })
	return r
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	r := newAuthRouter(session.NewManager(session.NewMemoryStore(), "secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
}

func TestLoadSessionWithValidCookie(t *testing.T) {
	m := session.NewManager(session.NewMemoryStore(), "secret", time.Hour)
	token, _, err := m.Start(context.Background(), 1, "admin")
	require.NoError(t, err)
	r := newAuthRouter(m)

	testCases := []struct {
		name         string
		path         string
		cookie       string
		expectedCode int
		expectedBody string
	}{
		{name: "admin with session", path: "/admin", cookie: token, expectedCode: http.StatusOK, expectedBody: "dashboard"},
		{name: "public with session", path: "/public", cookie: token, expectedCode: http.StatusOK, expectedBody: "hello admin"},
		{name: "public without session", path: "/public", expectedCode: http.StatusOK, expectedBody: "hello anonymous"},
		{name: "admin with forged cookie", path: "/admin", cookie: "forged", expectedCode: http.StatusFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedBody != "" {
				assert.Equal(t, tc.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		entry := Logger(c)
		c.String(http.StatusOK, entry.Data["request_id"].(string))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "upstream-id", rec.Body.String())
}

func TestLoggerWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, Logger(c))
}
