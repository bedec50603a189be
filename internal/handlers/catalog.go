package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shopapi/internal/catalog"
	"shopapi/internal/servererrors"
)

type CatalogHandler struct {
	svc *catalog.Service
	log *logrus.Logger
}

func NewCatalogHandler(svc *catalog.Service, log *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

func (h *CatalogHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/categories", h.categories)
	r.GET("/categories/:id", h.category)
	r.GET("/payment-types", h.paymentTypes)
}

func (h *CatalogHandler) categories(c *gin.Context) {
	cs, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, cs)
}

func (h *CatalogHandler) category(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, h.log, servererrors.ErrNotFound, "Category not found")
		return
	}
	cat, err := h.svc.Category(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, h.log, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CatalogHandler) paymentTypes(c *gin.Context) {
	ts, err := h.svc.PaymentTypes(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Payment type not found")
		return
	}
	c.JSON(http.StatusOK, ts)
}
