package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopapi/internal/catalog"
	"shopapi/internal/models"
	"shopapi/internal/products"
	"shopapi/internal/reviews"
)

// RefRepo serves the reference tables: existence checks at write time
// and the read-only catalog endpoints.
type RefRepo struct {
	db *gorm.DB
}

var (
	_ products.RefChecker = (*RefRepo)(nil)
	_ reviews.RefChecker  = (*RefRepo)(nil)
	_ catalog.Repository  = (*RefRepo)(nil)
)

func NewRefRepo(db *gorm.DB) *RefRepo {
	return &RefRepo{db: db}
}

func (r *RefRepo) CategoryExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &models.Category{}, id)
}

func (r *RefRepo) StoreExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &models.Store{}, id)
}

func (r *RefRepo) OrderLineExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &models.OrderLine{}, id)
}

func (r *RefRepo) exists(ctx context.Context, model any, id uint) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}

func (r *RefRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cs []models.Category
	err := r.db.WithContext(ctx).Order("id asc").Find(&cs).Error
	return cs, err
}

func (r *RefRepo) FindCategory(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *RefRepo) ListPaymentTypes(ctx context.Context) ([]models.PaymentType, error) {
	var ts []models.PaymentType
	err := r.db.WithContext(ctx).Order("id asc").Find(&ts).Error
	return ts, err
}
