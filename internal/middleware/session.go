package middleware

import (
	"net/http"
	"strings"

	"cfresh_inventory/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const sessionKey = "session"

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

// RequireSession admits requests carrying a valid session cookie. Pages
// redirect to the login form, API calls get a 401.
func RequireSession(sessions *auth.SessionManager, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			log.Debugf("Middleware: No session cookie for %s", c.Request.URL.Path)
			deny(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		claims, err := sessions.Parse(token)
		if err != nil {
			log.Warnf("Middleware: Rejected session for %s: %v", c.Request.URL.Path, err)
			deny(c, http.StatusUnauthorized, "Session expired")
			return
		}
		c.Set(sessionKey, claims)
		c.Next()
	}
}

// RequireAdmin must run after RequireSession.
func RequireAdmin(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := SessionFromContext(c)
		if !ok || !claims.IsAdmin() {
			log.WithField("path", c.Request.URL.Path).Warn("Middleware: Administrator access required")
			deny(c, http.StatusForbidden, "Administrator access required")
			return
		}
		c.Next()
	}
}

func deny(c *gin.Context, status int, message string) {
	if isAPIRequest(c) {
		c.AbortWithStatusJSON(status, gin.H{"status": "error", "message": message})
		return
	}
	if status == http.StatusUnauthorized {
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
		return
	}
	c.HTML(status, "error.tmpl", gin.H{"Title": "Access denied", "Status": status, "Message": message})
	c.Abort()
}

func SessionFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
