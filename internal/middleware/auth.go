package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/session"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session_id"

const userKey = "currentUser"

// CurrentUser returns the authenticated user set by RequireAuth.
func CurrentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	return value.(*domain.User)
}

// RequireAuth resolves the session cookie to a user record and aborts
// with 401 when there is no live session.
func RequireAuth(sessions *session.Store, users domain.UserRepository, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			log.Warn("Middleware: session cookie is missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		userID, ok := sessions.Get(token)
		if !ok {
			log.Warn("Middleware: session token is invalid or expired")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := users.GetUserByID(userID)
		if err != nil {
			log.Warnf("Middleware: session user %d no longer exists: %v", userID, err)
			sessions.Delete(token)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the session user carries the admin
// flag. Must run after RequireAuth.
func RequireAdmin(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			log.Warn("Middleware: admin access denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privilege required"})
			return
		}
		c.Next()
	}
}

func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()

		entry := logger.WithFields(logrus.Fields{
			"status_code": statusCode,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"remote_ip":   c.ClientIP(),
			"latency_ms":  latency.Milliseconds(),
		})

		switch {
		case statusCode >= 500:
			entry.Error("Request completed with server error")
		case statusCode >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed")
		}
	}
}
