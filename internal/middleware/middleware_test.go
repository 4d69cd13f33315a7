package middleware

import (
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cfresh_inventory/internal/auth"
	"cfresh_inventory/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testEngine() *gin.Engine {
	r := gin.New()
	tmpl := template.Must(template.New("error.tmpl").Parse(`{{.Message}}`))
	template.Must(tmpl.New("login.tmpl").Parse(`{{.Error}}`))
	r.SetHTMLTemplate(tmpl)
	return r
}

func sessionCookie(t *testing.T, sessions *auth.SessionManager, access domain.AccessLevel) *http.Cookie {
	t.Helper()
	token, err := sessions.Issue(&domain.User{ID: 1, Username: "someone", Access: access})
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func TestRequireSession(t *testing.T) {
	log := quietLogger()
	sessions := auth.NewSessionManager("0123456789abcdef0123", time.Hour)

	r := testEngine()
	r.Use(RequireSession(sessions, log))
	r.GET("/dashboard", func(c *gin.Context) {
		claims, ok := SessionFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, claims.Username)
	})
	r.GET("/api/report", func(c *gin.Context) { c.Status(http.StatusOK) })

	testCases := []struct {
		name       string
		path       string
		cookie     *http.Cookie
		wantStatus int
		wantHeader string
	}{
		{name: "page without cookie redirects", path: "/dashboard", wantStatus: http.StatusSeeOther, wantHeader: "/"},
		{name: "api without cookie is 401", path: "/api/report", wantStatus: http.StatusUnauthorized},
		{name: "garbage cookie redirects", path: "/dashboard", cookie: &http.Cookie{Name: auth.CookieName, Value: "x"}, wantStatus: http.StatusSeeOther, wantHeader: "/"},
		{name: "valid cookie", path: "/dashboard", cookie: sessionCookie(t, sessions, domain.AccessUser), wantStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantHeader != "" {
				assert.Equal(t, tc.wantHeader, rec.Header().Get("Location"))
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	log := quietLogger()
	sessions := auth.NewSessionManager("0123456789abcdef0123", time.Hour)

	r := testEngine()
	r.POST("/dashboard/vendors", RequireSession(sessions, log), RequireAdmin(log), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/dashboard/vendors", nil)
	req.AddCookie(sessionCookie(t, sessions, domain.AccessUser))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Administrator access required")

	req = httptest.NewRequest(http.MethodPost, "/dashboard/vendors", nil)
	req.AddCookie(sessionCookie(t, sessions, domain.AccessAdministrator))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestLoginRateLimiter(t *testing.T) {
	limiter := NewLoginRateLimiter(1, 2, quietLogger())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	r := testEngine()
	r.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	post := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post("10.0.0.1"))
	assert.Equal(t, http.StatusOK, post("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, post("10.0.0.1"))
	assert.Equal(t, http.StatusOK, post("10.0.0.2"), "limits are per client")

	now = now.Add(time.Minute)
	assert.Equal(t, http.StatusOK, post("10.0.0.1"))
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	var buf strings.Builder
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"status_code":404`)
	assert.Contains(t, buf.String(), `"level":"warning"`)
}
