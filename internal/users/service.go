package users

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"shopapi/internal/models"
	"shopapi/internal/servererrors"
)

// Repository — user persistence. Find methods return (nil, nil) when
// no row matches.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

type RegisterInput struct {
	// Contact is an email or a phone number, a single sign-up field.
	Contact  string `form:"contact" json:"contact" binding:"required"`
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	// Identifier is a username, email, or phone number.
	Identifier string `form:"username" json:"username" binding:"required"`
	Password   string `form:"password" json:"password" binding:"required"`
}

type Service struct {
	repo Repository
	log  *logrus.Logger
}

func NewService(repo Repository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	contact := strings.TrimSpace(in.Contact)
	username := strings.TrimSpace(in.Username)

	var email, phone string
	if strings.Contains(contact, "@") {
		email = contact
	} else {
		phone = contact
	}

	verr := servererrors.NewValidation()
	if existing, err := s.repo.FindByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		verr.Add("username", "username is already taken")
	}
	if email != "" {
		if existing, err := s.repo.FindByEmail(ctx, email); err != nil {
			return nil, err
		} else if existing != nil {
			verr.Add("contact", "email is already registered")
		}
	}
	if phone != "" {
		if existing, err := s.repo.FindByPhone(ctx, phone); err != nil {
			return nil, err
		} else if existing != nil {
			verr.Add("contact", "phone is already registered")
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	hash, err := models.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         models.RoleBuyer,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.WithField("user_id", u.ID).Info("user registered")
	return u, nil
}

func (s *Service) Authenticate(ctx context.Context, in LoginInput) (*models.User, error) {
	ident := strings.TrimSpace(in.Identifier)

	var (
		u   *models.User
		err error
	)
	switch {
	case strings.Contains(ident, "@"):
		u, err = s.repo.FindByEmail(ctx, ident)
	case looksLikePhone(ident):
		u, err = s.repo.FindByPhone(ctx, ident)
	default:
		u, err = s.repo.FindByUsername(ctx, ident)
	}
	if err != nil {
		return nil, err
	}
	if u == nil || !models.CheckPassword(u.PasswordHash, in.Password) {
		return nil, servererrors.ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, servererrors.ErrNotFound
	}
	return u, nil
}

func looksLikePhone(s string) bool {
	if strings.HasPrefix(s, "+") {
		return true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
