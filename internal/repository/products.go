package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopapi/internal/models"
	"shopapi/internal/products"
)

// ProductRepo is the GORM-backed persistence for products and their
// stock records.
type ProductRepo struct {
	db *gorm.DB
}

var _ products.Repository = (*ProductRepo)(nil)

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) ListWithItems(ctx context.Context) ([]models.Product, error) {
	var ps []models.Product
	err := r.db.WithContext(ctx).Preload("Items").Order("id desc").Find(&ps).Error
	return ps, err
}

func (r *ProductRepo) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) FindByIDWithItems(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Preload("Items").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Omit("Items").Create(p).Error
}

func (r *ProductRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ProductRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}

func (r *ProductRepo) FirstItem(ctx context.Context, productID uint) (*models.ProductItem, error) {
	var item models.ProductItem
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id asc").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ProductRepo) CreateItem(ctx context.Context, item *models.ProductItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ProductRepo) SetItemQuantity(ctx context.Context, itemID uint, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductItem{}).
		Where("id = ?", itemID).
		Update("quantity_in_stock", qty).Error
}

func (r *ProductRepo) DeleteItems(ctx context.Context, productID uint) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.ProductItem{}).Error
}

func (r *ProductRepo) Transaction(ctx context.Context, fn func(products.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ProductRepo{db: tx})
	})
}
