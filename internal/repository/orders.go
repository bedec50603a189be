package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopapi/internal/models"
	"shopapi/internal/orders"
)

type OrderRepo struct {
	db *gorm.DB
}

var _ orders.Repository = (*OrderRepo)(nil)

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) HistoryByUser(ctx context.Context, userID uint) ([]models.OrderHistory, error) {
	var hs []models.OrderHistory
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id desc").Find(&hs).Error
	return hs, err
}

func (r *OrderRepo) OrdersByUser(ctx context.Context, userID uint) ([]models.ShopOrder, error) {
	var os []models.ShopOrder
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&os).Error
	return os, err
}

func (r *OrderRepo) FindOrderForUser(ctx context.Context, id, userID uint) (*models.ShopOrder, error) {
	var o models.ShopOrder
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("id = ? AND user_id = ?", id, userID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
