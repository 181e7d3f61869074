package middleware

import (
	"net/http" // HTTP status codes

	"catalog_shop/internal/session" // Session lifecycle

	"github.com/gin-gonic/gin" // Gin web framework
)

// SessionCookie is the name of the admin session cookie
const SessionCookie = "catalog_session"

// LoginPath is where anonymous admin requests are sent
const LoginPath = "/admin/login"

const sessionKey = "session"

// LoadSession resolves the session cookie and stores the session on the context
func LoadSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie) // Read the cookie
		if err == nil && token != "" {
			if s, err := sessions.Resolve(c.Request.Context(), token); err == nil {
				c.Set(sessionKey, s) // Authenticated
			}
		}
		c.Next()
	}
}

// RequireAuth redirects requests without a session to the login page
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session loaded for this request, or nil when anonymous
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}
