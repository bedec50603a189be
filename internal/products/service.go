package products

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"shopapi/internal/models"
	"shopapi/internal/servererrors"
	"shopapi/internal/storage"
)

const imageFolder = "product_images"

// Repository is the persistence surface the lifecycle service needs.
// Transaction runs fn against a repository bound to a single database
// transaction.
type Repository interface {
	ListWithItems(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindByIDWithItems(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error

	FirstItem(ctx context.Context, productID uint) (*models.ProductItem, error)
	CreateItem(ctx context.Context, item *models.ProductItem) error
	SetItemQuantity(ctx context.Context, itemID uint, qty int) error
	DeleteItems(ctx context.Context, productID uint) error

	Transaction(ctx context.Context, fn func(Repository) error) error
}

// RefChecker answers existence checks against the reference tables.
type RefChecker interface {
	CategoryExists(ctx context.Context, id uint) (bool, error)
	StoreExists(ctx context.Context, id uint) (bool, error)
}

// Service orchestrates product create/update/delete, keeping the stock
// record and the stored image file in step with the product row.
type Service struct {
	repo  Repository
	refs  RefChecker
	files storage.FileStore
	log   *logrus.Logger
}

func NewService(repo Repository, refs RefChecker, files storage.FileStore, log *logrus.Logger) *Service {
	return &Service{repo: repo, refs: refs, files: files, log: log}
}

// List returns every product with its stock records, for any caller.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListWithItems(ctx)
}

// Get returns one product or ErrNotFound. Intentionally no ownership
// check: everyone can see any product, only delete is owner-gated.
func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.repo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, servererrors.ErrNotFound
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput, image *ImageUpload, ownerID uint) (*models.Product, *models.ProductItem, error) {
	verr := servererrors.NewValidation()
	if err := s.checkRefs(ctx, in.CategoryID, in.StoreID, verr); err != nil {
		return nil, nil, err
	}
	if name := strings.TrimSpace(in.Name); name == "" || utf8.RuneCountInString(name) > 255 {
		verr.Add("name", "name is required and must be at most 255 characters")
	}
	if in.Price == nil || *in.Price < 0 {
		verr.Add("price", "price is required and must be at least 0")
	}
	if in.QuantityInStock != nil && *in.QuantityInStock < 0 {
		verr.Add("quantity_in_stock", "quantity in stock must be at least 0")
	}
	if image != nil {
		if ierr := validateImage(image, createImageExts, 0); ierr != nil {
			verr.Add("product_image", ierr.Fields["product_image"])
		}
	}
	if !verr.Empty() {
		return nil, nil, verr
	}

	var key string
	if image != nil {
		var err error
		key, err = s.files.Put(image.Data, image.ext(), imageFolder)
		if err != nil {
			return nil, nil, err
		}
	}

	p := &models.Product{
		CategoryID:  in.CategoryID,
		StoreID:     in.StoreID,
		UserID:      ownerID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       *in.Price,
		ImagePath:   key,
	}
	item := &models.ProductItem{}
	if in.QuantityInStock != nil {
		item.QuantityInStock = *in.QuantityInStock
	}

	err := s.repo.Transaction(ctx, func(r Repository) error {
		if err := r.Create(ctx, p); err != nil {
			return err
		}
		item.ProductID = p.ID
		return r.CreateItem(ctx, item)
	})
	if err != nil {
		// the image was stored before the row: clean it up
		if key != "" {
			if derr := s.files.Delete(key); derr != nil {
				s.log.WithError(derr).Warnf("orphaned image %s after failed create", key)
			}
		}
		return nil, nil, err
	}

	s.log.WithFields(logrus.Fields{"product_id": p.ID, "user_id": ownerID}).Info("product created")
	return p, item, nil
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput, image *ImageUpload) (*models.Product, error) {
	p, err := s.repo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, servererrors.ErrNotFound
	}

	verr := servererrors.NewValidation()
	fields := map[string]any{}
	if in.CategoryID != nil {
		if ok, err := s.refs.CategoryExists(ctx, *in.CategoryID); err != nil {
			return nil, err
		} else if !ok {
			verr.Add("category_id", "selected category does not exist")
		} else {
			fields["category_id"] = *in.CategoryID
		}
	}
	if in.StoreID != nil {
		if ok, err := s.refs.StoreExists(ctx, *in.StoreID); err != nil {
			return nil, err
		} else if !ok {
			verr.Add("store_id", "selected store does not exist")
		} else {
			fields["store_id"] = *in.StoreID
		}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || utf8.RuneCountInString(name) > 255 {
			verr.Add("name", "name must be a non-empty string of at most 255 characters")
		} else {
			fields["name"] = name
		}
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			verr.Add("price", "price must be at least 0")
		} else {
			fields["price"] = *in.Price
		}
	}
	if in.QuantityInStock != nil && *in.QuantityInStock < 0 {
		verr.Add("quantity_in_stock", "quantity in stock must be at least 0")
	}
	if image != nil {
		if ierr := validateImage(image, updateImageExts, maxUpdateImageSize); ierr != nil {
			verr.Add("product_image", ierr.Fields["product_image"])
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	var newKey string
	if image != nil {
		// best-effort removal of the replaced object
		if p.ImagePath != "" {
			if derr := s.files.Delete(p.ImagePath); derr != nil {
				s.log.WithError(derr).Warnf("could not delete old image %s", p.ImagePath)
			}
		}
		newKey, err = s.files.Put(image.Data, image.ext(), imageFolder)
		if err != nil {
			return nil, err
		}
		fields["image_path"] = newKey
	}

	err = s.repo.Transaction(ctx, func(r Repository) error {
		if len(fields) > 0 {
			if err := r.UpdateFields(ctx, id, fields); err != nil {
				return err
			}
		}
		if in.QuantityInStock != nil {
			item, err := r.FirstItem(ctx, id)
			if err != nil {
				return err
			}
			if item != nil {
				return r.SetItemQuantity(ctx, item.ID, *in.QuantityInStock)
			}
			return r.CreateItem(ctx, &models.ProductItem{
				ProductID:       id,
				QuantityInStock: *in.QuantityInStock,
			})
		}
		return nil
	})
	if err != nil {
		// the new image was stored before the row: clean it up
		if newKey != "" {
			if derr := s.files.Delete(newKey); derr != nil {
				s.log.WithError(derr).Warnf("orphaned image %s after failed update", newKey)
			}
		}
		return nil, err
	}

	s.log.WithField("product_id", id).Info("product updated")
	// re-read so the response reflects what was actually persisted
	updated, err := s.repo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, servererrors.ErrNotFound
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, requesterID uint) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return servererrors.ErrNotFound
	}
	if p.UserID != requesterID {
		return servererrors.ErrForbidden
	}

	if p.ImagePath != "" {
		if derr := s.files.Delete(p.ImagePath); derr != nil {
			s.log.WithError(derr).Warnf("could not delete image %s", p.ImagePath)
		}
	}

	err = s.repo.Transaction(ctx, func(r Repository) error {
		if err := r.DeleteItems(ctx, id); err != nil {
			return err
		}
		return r.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"product_id": id, "user_id": requesterID}).Info("product deleted")
	return nil
}

func (s *Service) checkRefs(ctx context.Context, categoryID, storeID uint, verr *servererrors.ValidationError) error {
	ok, err := s.refs.CategoryExists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		verr.Add("category_id", "selected category does not exist")
	}
	ok, err = s.refs.StoreExists(ctx, storeID)
	if err != nil {
		return err
	}
	if !ok {
		verr.Add("store_id", "selected store does not exist")
	}
	return nil
}
