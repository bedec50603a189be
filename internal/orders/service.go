package orders

import (
	"context"

	"shopapi/internal/models"
	"shopapi/internal/servererrors"
)

// Repository — read-only order access, always scoped per user.
type Repository interface {
	HistoryByUser(ctx context.Context, userID uint) ([]models.OrderHistory, error)
	OrdersByUser(ctx context.Context, userID uint) ([]models.ShopOrder, error)
	FindOrderForUser(ctx context.Context, id, userID uint) (*models.ShopOrder, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) History(ctx context.Context, userID uint) ([]models.OrderHistory, error) {
	return s.repo.HistoryByUser(ctx, userID)
}

func (s *Service) List(ctx context.Context, userID uint) ([]models.ShopOrder, error) {
	return s.repo.OrdersByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id, userID uint) (*models.ShopOrder, error) {
	o, err := s.repo.FindOrderForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, servererrors.ErrNotFound
	}
	return o, nil
}
