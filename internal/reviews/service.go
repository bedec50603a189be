package reviews

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"shopapi/internal/models"
	"shopapi/internal/servererrors"
)

// Repository — persistence for user reviews. Find methods return
// (nil, nil) when no row matches.
type Repository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.UserReview, error)
	FindForUser(ctx context.Context, id, userID uint) (*models.UserReview, error)
	Create(ctx context.Context, r *models.UserReview) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

// RefChecker verifies the order line a review points at exists.
type RefChecker interface {
	OrderLineExists(ctx context.Context, id uint) (bool, error)
}

type CreateInput struct {
	OrderProductID uint   `form:"order_product_id" json:"order_product_id" binding:"required"`
	ReviewText     string `form:"review_text" json:"review_text"`
	Rating         *int   `form:"rating" json:"rating" binding:"required,gte=1,lte=5"`
}

type UpdateInput struct {
	ReviewText *string `form:"review_text" json:"review_text"`
	Rating     *int    `form:"rating" json:"rating" binding:"omitempty,gte=1,lte=5"`
}

// Service — review CRUD, every operation scoped to the acting user.
type Service struct {
	repo Repository
	refs RefChecker
	log  *logrus.Logger
}

func NewService(repo Repository, refs RefChecker, log *logrus.Logger) *Service {
	return &Service{repo: repo, refs: refs, log: log}
}

func (s *Service) List(ctx context.Context, userID uint) ([]models.UserReview, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id, userID uint) (*models.UserReview, error) {
	r, err := s.repo.FindForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, servererrors.ErrNotFound
	}
	return r, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput, userID uint) (*models.UserReview, error) {
	verr := servererrors.NewValidation()
	if ok, err := s.refs.OrderLineExists(ctx, in.OrderProductID); err != nil || !ok {
		verr.Add("order_product_id", "selected order product does not exist")
	}
	if in.Rating == nil || *in.Rating < 1 || *in.Rating > 5 {
		verr.Add("rating", "rating is required and must be between 1 and 5")
	}
	if !verr.Empty() {
		return nil, verr
	}

	r := &models.UserReview{
		UserID:         userID,
		OrderProductID: in.OrderProductID,
		ReviewText:     strings.TrimSpace(in.ReviewText),
		Rating:         *in.Rating,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"review_id": r.ID, "user_id": userID}).Info("review created")
	return r, nil
}

func (s *Service) Update(ctx context.Context, id, userID uint, in UpdateInput) (*models.UserReview, error) {
	r, err := s.repo.FindForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, servererrors.ErrNotFound
	}

	fields := map[string]any{}
	if in.ReviewText != nil {
		fields["review_text"] = strings.TrimSpace(*in.ReviewText)
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, servererrors.Invalid("rating", "rating must be between 1 and 5")
		}
		fields["rating"] = *in.Rating
	}
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.FindForUser(ctx, id, userID)
}

func (s *Service) Delete(ctx context.Context, id, userID uint) error {
	r, err := s.repo.FindForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if r == nil {
		return servererrors.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"review_id": id, "user_id": userID}).Info("review deleted")
	return nil
}
