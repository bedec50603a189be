package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shopapi/internal/products"
	"shopapi/internal/servererrors"
	"shopapi/internal/storage"
)

const productNotFound = "Product not found"

type ProductHandler struct {
	svc   *products.Service
	files storage.FileStore
	log   *logrus.Logger
}

func NewProductHandler(svc *products.Service, files storage.FileStore, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, files: files, log: log}
}

func (h *ProductHandler) RegisterRoutes(r gin.IRouter, auth gin.HandlerFunc) {
	r.GET("/products", h.list)
	r.GET("/products/:id", h.show)

	g := r.Group("/products", auth)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.destroy)
}

func (h *ProductHandler) list(c *gin.Context) {
	ps, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, productNotFound)
		return
	}
	c.JSON(http.StatusOK, products.PresentAll(ps, h.files))
}

func (h *ProductHandler) show(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, productNotFound)
		return
	}
	c.JSON(http.StatusOK, products.Present(p, h.files))
}

func (h *ProductHandler) create(c *gin.Context) {
	var in products.CreateInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, h.log, bindError(err), productNotFound)
		return
	}
	image, err := h.readImage(c)
	if err != nil {
		respondError(c, h.log, err, productNotFound)
		return
	}

	owner := currentUser(c)
	p, item, err := h.svc.Create(c.Request.Context(), in, image, owner.ID)
	if err != nil {
		respondError(c, h.log, err, productNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Product created successfully",
		"product":      products.Present(p, h.files),
		"product_item": item,
	})
}

func (h *ProductHandler) update(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	var in products.UpdateInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, h.log, bindError(err), productNotFound)
		return
	}
	image, err := h.readImage(c)
	if err != nil {
		respondError(c, h.log, err, productNotFound)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, in, image)
	if err != nil {
		respondError(c, h.log, err, productNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": products.Present(p, h.files),
	})
}

func (h *ProductHandler) destroy(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	requester := currentUser(c)
	if err := h.svc.Delete(c.Request.Context(), id, requester.ID); err != nil {
		respondError(c, h.log, err, "Product not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully."})
}

// productID parses the :id param; a non-numeric id behaves like a
// missing product.
func (h *ProductHandler) productID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, h.log, servererrors.ErrNotFound, productNotFound)
		return 0, false
	}
	return uint(id), true
}

// readImage pulls the optional product_image file out of the multipart
// form; a missing file is not an error.
func (h *ProductHandler) readImage(c *gin.Context) (*products.ImageUpload, error) {
	file, err := c.FormFile("product_image")
	if err != nil {
		return nil, nil
	}
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &products.ImageUpload{
		Filename: file.Filename,
		Size:     file.Size,
		Data:     data,
	}, nil
}
