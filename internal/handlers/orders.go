package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shopapi/internal/orders"
	"shopapi/internal/servererrors"
)

type OrderHandler struct {
	svc *orders.Service
	log *logrus.Logger
}

func NewOrderHandler(svc *orders.Service, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

func (h *OrderHandler) RegisterRoutes(r gin.IRouter, auth gin.HandlerFunc) {
	g := r.Group("/orders", auth)
	g.GET("", h.list)
	g.GET("/history", h.history)
	g.GET("/:id", h.show)
}

func (h *OrderHandler) list(c *gin.Context) {
	u := currentUser(c)
	os, err := h.svc.List(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.log, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, os)
}

func (h *OrderHandler) history(c *gin.Context) {
	u := currentUser(c)
	hs, err := h.svc.History(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.log, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, hs)
}

func (h *OrderHandler) show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, h.log, servererrors.ErrNotFound, "Order not found")
		return
	}
	u := currentUser(c)
	o, err := h.svc.Get(c.Request.Context(), uint(id), u.ID)
	if err != nil {
		respondError(c, h.log, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, o)
}
