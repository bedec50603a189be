package catalog

import (
	"context"

	"shopapi/internal/models"
	"shopapi/internal/servererrors"
)

// Repository — reference-table reads.
type Repository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategory(ctx context.Context, id uint) (*models.Category, error)
	ListPaymentTypes(ctx context.Context) ([]models.PaymentType, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) Category(ctx context.Context, id uint) (*models.Category, error) {
	c, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, servererrors.ErrNotFound
	}
	return c, nil
}

func (s *Service) PaymentTypes(ctx context.Context) ([]models.PaymentType, error) {
	return s.repo.ListPaymentTypes(ctx)
}
