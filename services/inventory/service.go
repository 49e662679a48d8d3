package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"travelhub/apperr"
	"travelhub/database"
	inventoryRepo "travelhub/database/repository/inventory"
	"travelhub/services/pagination"
	"travelhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (string, error)
}

// Service is the admin CRUD for one kind of inventory document.
type Service[T any, P inventoryRepo.Item[T]] struct {
	kind   string
	repo   inventoryRepo.InventoryRepository[T]
	images ImageUploader
	// check runs extra rules before create and update.
	check  func(ctx context.Context, item *T) error
	logger *zap.Logger
}

func NewService[T any, P inventoryRepo.Item[T]](kind string, repo inventoryRepo.InventoryRepository[T], images ImageUploader, logger *zap.Logger) *Service[T, P] {
	return &Service[T, P]{kind: kind, repo: repo, images: images, logger: logger.With(zap.String("inventory", kind))}
}

// WithCheck installs a rule evaluated before every write.
func (s *Service[T, P]) WithCheck(check func(ctx context.Context, item *T) error) *Service[T, P] {
	s.check = check
	return s
}

func (s *Service[T, P]) validate(ctx context.Context, item *T) error {
	if err := utils.ValidateStruct(item); err != nil {
		return err
	}
	if s.check != nil {
		return s.check(ctx, item)
	}
	return nil
}

func (s *Service[T, P]) Create(ctx context.Context, item *T) (*T, error) {
	if err := s.validate(ctx, item); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	meta := P(item).Meta()
	meta.ID = uuid.New().String()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("Failed to create inventory item", zap.Error(err))
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperr.Duplicate(fmt.Sprintf("%s already exists", s.kind), err)
		}
		return nil, apperr.Persistence(fmt.Sprintf("failed to create %s", s.kind), err)
	}
	s.logger.Info("Inventory item created", zap.String("id", meta.ID))
	return item, nil
}

// Update fully replaces the document with id, keeping its creation time.
func (s *Service[T, P]) Update(ctx context.Context, id string, item *T) (*T, error) {
	if err := s.validate(ctx, item); err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	meta := P(item).Meta()
	meta.ID = id
	meta.CreatedAt = P(existing).Meta().CreatedAt
	meta.UpdatedAt = time.Now().UTC()

	if err := s.repo.Replace(ctx, item); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.ReferenceNotFound("%s %s not found", s.kind, id)
		}
		return nil, apperr.Persistence(fmt.Sprintf("failed to update %s", s.kind), err)
	}
	return item, nil
}

func (s *Service[T, P]) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return apperr.ReferenceNotFound("%s %s not found", s.kind, id)
	}
	if err != nil {
		return apperr.Persistence(fmt.Sprintf("failed to delete %s", s.kind), err)
	}
	s.logger.Info("Inventory item deleted", zap.String("id", id))
	return nil
}

func (s *Service[T, P]) Get(ctx context.Context, id string) (*T, error) {
	item, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.ReferenceNotFound("%s %s not found", s.kind, id)
	}
	if err != nil {
		return nil, apperr.Persistence(fmt.Sprintf("failed to load %s", s.kind), err)
	}
	return item, nil
}

// List pages through the inventory, optionally narrowed by a text query.
func (s *Service[T, P]) List(ctx context.Context, query string, page, pageSize int) (pagination.Page[T], error) {
	items, err := s.repo.List(ctx, query)
	if err != nil {
		return pagination.Page[T]{}, apperr.Persistence(fmt.Sprintf("failed to list %s", s.kind), err)
	}
	return pagination.PaginateResults(items, page, pageSize)
}

// AddImage uploads file and appends its URL to the document's images.
func (s *Service[T, P]) AddImage(ctx context.Context, id string, file io.Reader) (string, error) {
	if s.images == nil {
		return "", apperr.New(apperr.KindInternal, "image storage is not configured")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}

	url, err := s.images.UploadImage(ctx, file, fmt.Sprintf("%s/%s", s.kind, id))
	if err != nil {
		s.logger.Error("Image upload failed", zap.String("id", id), zap.Error(err))
		return "", apperr.Wrap(apperr.KindUpstream, "image upload failed", err)
	}
	if err := s.repo.AddImage(ctx, id, url); err != nil {
		return "", apperr.Persistence("failed to attach image", err)
	}
	return url, nil
}
