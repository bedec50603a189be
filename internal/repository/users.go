package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopapi/internal/models"
	"shopapi/internal/users"
)

type UserRepo struct {
	db *gorm.DB
}

var _ users.Repository = (*UserRepo)(nil)

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	return r.one(r.db.WithContext(ctx).First(&u, id), &u)
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	return r.one(r.db.WithContext(ctx).Where("username = ?", username).First(&u), &u)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	return r.one(r.db.WithContext(ctx).Where("email = ?", email).First(&u), &u)
}

func (r *UserRepo) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var u models.User
	return r.one(r.db.WithContext(ctx).Where("phone = ?", phone).First(&u), &u)
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) one(tx *gorm.DB, u *models.User) (*models.User, error) {
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return u, nil
}
