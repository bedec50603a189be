package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shopapi/internal/users"
)

type AuthHandler struct {
	svc *users.Service
	log *logrus.Logger
}

func NewAuthHandler(svc *users.Service, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

func (h *AuthHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.POST("/logout", h.logout)
}

func (h *AuthHandler) register(c *gin.Context) {
	var in users.RegisterInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, h.log, bindError(err), "User not found")
		return
	}
	u, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err, "User not found")
		return
	}
	h.startSession(c, u.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Registered successfully", "user": u})
}

func (h *AuthHandler) login(c *gin.Context) {
	var in users.LoginInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, h.log, bindError(err), "User not found")
		return
	}
	u, err := h.svc.Authenticate(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err, "User not found")
		return
	}
	h.startSession(c, u.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully", "user": u})
}

func (h *AuthHandler) logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		h.log.WithError(err).Warn("could not clear session")
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) startSession(c *gin.Context, userID uint) {
	sess := sessions.Default(c)
	sess.Set(sessionUserKey, userID)
	if err := sess.Save(); err != nil {
		h.log.WithError(err).Warn("could not save session")
	}
}
