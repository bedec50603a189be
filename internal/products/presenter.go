package products

import (
	"shopapi/internal/models"
	"shopapi/internal/storage"
)

// Payload is the outbound shape of a product: the raw file-store key
// stays hidden and a derived public URL takes its place.
type Payload struct {
	models.Product
	ProductImageURL string `json:"product_image_url,omitempty"`
}

func Present(p *models.Product, files storage.FileStore) Payload {
	out := Payload{Product: *p}
	if p.ImagePath != "" {
		out.ProductImageURL = files.URL(p.ImagePath)
	}
	return out
}

func PresentAll(ps []models.Product, files storage.FileStore) []Payload {
	out := make([]Payload, 0, len(ps))
	for i := range ps {
		out = append(out, Present(&ps[i], files))
	}
	return out
}
