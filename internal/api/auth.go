package api

import (
	"context"  // Context for store calls
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"sync"     // Lazy dummy hash

	"catalog_shop/internal/domain"     // Importing domain models
	"catalog_shop/internal/metrics"    // Login counters
	"catalog_shop/internal/middleware" // Session cookie helpers
	"catalog_shop/internal/session"    // Session lifecycle

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// invalidCredentials is shown for every failed login
const invalidCredentials = "Identifiants invalides"

// dummyHash is compared against when the username is unknown so both
// failure paths spend the same bcrypt time
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("catalog-dummy-password"), bcrypt.DefaultCost)
	return hash
})

// authenticate checks a username/password pair
func authenticate(ctx context.Context, users UserStore, username, password string) (*domain.User, error) {
	user, err := users.FindUserByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, domain.ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// LoginPageHandler renders the login form, or goes to the dashboard when already signed in
func LoginPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if middleware.CurrentSession(c) != nil {
			c.Redirect(http.StatusFound, "/admin")
			return
		}
		render(c, http.StatusOK, "login", gin.H{"Error": "", "Username": ""})
	}
}

// LoginHandler authenticates the admin and opens a session
func LoginHandler(users UserStore, sessions *session.Manager, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form LoginForm // Bind form to struct
		if err := c.ShouldBind(&form); err != nil {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			render(c, http.StatusOK, "login", gin.H{"Error": invalidCredentials, "Username": form.Username})
			return
		}
		user, err := authenticate(c.Request.Context(), users, form.Username, form.Password)
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			middleware.Logger(c).Warn("admin login rejected")
			render(c, http.StatusOK, "login", gin.H{"Error": invalidCredentials, "Username": form.Username})
			return
		} else if err != nil {
			serverError(c, "login lookup failed", err)
			return
		}
		token, _, err := sessions.Start(c.Request.Context(), user.ID, user.Username)
		if err != nil {
			serverError(c, "session start failed", err)
			return
		}
		metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
		middleware.Logger(c).WithField("user_id", user.ID).Info("admin logged in")
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookie, token, int(sessions.TTL().Seconds()), "/", "", secureCookie, true)
		c.Redirect(http.StatusFound, "/admin")
	}
}

// LogoutHandler destroys the session and returns to the login page
func LogoutHandler(sessions *session.Manager, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(middleware.SessionCookie); err == nil {
			if err := sessions.Destroy(c.Request.Context(), token); err != nil {
				middleware.Logger(c).WithError(err).Warn("session destroy failed")
			}
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secureCookie, true) // Expire the cookie
		c.Redirect(http.StatusFound, middleware.LoginPath)
	}
}
