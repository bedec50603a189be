package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shopapi/internal/models"
	"shopapi/internal/users"
)

const (
	sessionUserKey = "user_id"
	ctxUserKey     = "currentUser"
)

// RequireAuth resolves the session user and puts it on the request
// context; requests without a live session get a 401.
func RequireAuth(svc *users.Service, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, ok := sess.Get(sessionUserKey).(uint)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
			return
		}
		u, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			log.WithError(err).WithField("user_id", id).Warn("session user lookup failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
			return
		}
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(ctxUserKey).(*models.User)
}

// RequestLogger logs every completed request with method, path, and
// status.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.WithFields(logrus.Fields{
			"status": c.Writer.Status(),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("request completed")
	}
}
