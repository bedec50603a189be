package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shopapi/internal/reviews"
	"shopapi/internal/servererrors"
)

const reviewNotFound = "Review not found"

type ReviewHandler struct {
	svc *reviews.Service
	log *logrus.Logger
}

func NewReviewHandler(svc *reviews.Service, log *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: log}
}

func (h *ReviewHandler) RegisterRoutes(r gin.IRouter, auth gin.HandlerFunc) {
	g := r.Group("/reviews", auth)
	g.GET("", h.list)
	g.GET("/:id", h.show)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.destroy)
}

func (h *ReviewHandler) list(c *gin.Context) {
	u := currentUser(c)
	rs, err := h.svc.List(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.log, err, reviewNotFound)
		return
	}
	c.JSON(http.StatusOK, rs)
}

func (h *ReviewHandler) show(c *gin.Context) {
	id, ok := h.reviewID(c)
	if !ok {
		return
	}
	u := currentUser(c)
	r, err := h.svc.Get(c.Request.Context(), id, u.ID)
	if err != nil {
		respondError(c, h.log, err, reviewNotFound)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ReviewHandler) create(c *gin.Context) {
	var in reviews.CreateInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, h.log, bindError(err), reviewNotFound)
		return
	}
	u := currentUser(c)
	r, err := h.svc.Create(c.Request.Context(), in, u.ID)
	if err != nil {
		respondError(c, h.log, err, reviewNotFound)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *ReviewHandler) update(c *gin.Context) {
	id, ok := h.reviewID(c)
	if !ok {
		return
	}
	var in reviews.UpdateInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, h.log, bindError(err), reviewNotFound)
		return
	}
	u := currentUser(c)
	r, err := h.svc.Update(c.Request.Context(), id, u.ID, in)
	if err != nil {
		respondError(c, h.log, err, reviewNotFound)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ReviewHandler) destroy(c *gin.Context) {
	id, ok := h.reviewID(c)
	if !ok {
		return
	}
	u := currentUser(c)
	if err := h.svc.Delete(c.Request.Context(), id, u.ID); err != nil {
		respondError(c, h.log, err, reviewNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

func (h *ReviewHandler) reviewID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, h.log, servererrors.ErrNotFound, reviewNotFound)
		return 0, false
	}
	return uint(id), true
}
