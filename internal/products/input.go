package products

import (
	"path/filepath"
	"strings"

	"shopapi/internal/servererrors"
)

// createImageExts — formats accepted when a product is first created.
var createImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// updateImageExts — the wider list accepted on update.
var updateImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
	".gif": true, ".bmp": true, ".avif": true, ".svg": true,
	".tif": true, ".tiff": true,
}

const maxUpdateImageSize = 5 << 20 // 5MB, update only

// CreateInput — fields of a product create request. Binding tags cover
// the syntactic constraints; the service re-checks ranges and verifies
// category/store existence.
type CreateInput struct {
	CategoryID      uint     `form:"category_id" json:"category_id" binding:"required"`
	StoreID         uint     `form:"store_id" json:"store_id" binding:"required"`
	Name            string   `form:"name" json:"name" binding:"required,max=255"`
	Description     string   `form:"description" json:"description"`
	Price           *float64 `form:"price" json:"price" binding:"required,gte=0"`
	QuantityInStock *int     `form:"quantity_in_stock" json:"quantity_in_stock" binding:"omitempty,gte=0"`
}

// UpdateInput — partial update; every field optional.
type UpdateInput struct {
	CategoryID      *uint    `form:"category_id" json:"category_id"`
	StoreID         *uint    `form:"store_id" json:"store_id"`
	Name            *string  `form:"name" json:"name" binding:"omitempty,max=255"`
	Description     *string  `form:"description" json:"description"`
	Price           *float64 `form:"price" json:"price" binding:"omitempty,gte=0"`
	QuantityInStock *int     `form:"quantity_in_stock" json:"quantity_in_stock" binding:"omitempty,gte=0"`
}

// ImageUpload — an uploaded image file already read into memory.
type ImageUpload struct {
	Filename string
	Size     int64
	Data     []byte
}

func (u *ImageUpload) ext() string {
	return strings.ToLower(filepath.Ext(u.Filename))
}

func validateImage(u *ImageUpload, allowed map[string]bool, maxSize int64) *servererrors.ValidationError {
	if !allowed[u.ext()] {
		return servererrors.Invalid("product_image", "unsupported image format")
	}
	if maxSize > 0 && u.Size > maxSize {
		return servererrors.Invalid("product_image", "image exceeds maximum size of 5MB")
	}
	return nil
}
