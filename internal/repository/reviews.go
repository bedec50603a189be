package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopapi/internal/models"
	"shopapi/internal/reviews"
)

type ReviewRepo struct {
	db *gorm.DB
}

var _ reviews.Repository = (*ReviewRepo)(nil)

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint) ([]models.UserReview, error) {
	var rs []models.UserReview
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id desc").Find(&rs).Error
	return rs, err
}

func (r *ReviewRepo) FindForUser(ctx context.Context, id, userID uint) (*models.UserReview, error) {
	var rev models.UserReview
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&rev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepo) Create(ctx context.Context, rev *models.UserReview) error {
	return r.db.WithContext(ctx).Create(rev).Error
}

func (r *ReviewRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.UserReview{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ReviewRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.UserReview{}, id).Error
}
