package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/talkincode/shopcore/internal/domain"
	"github.com/talkincode/shopcore/internal/storage"
	"github.com/talkincode/shopcore/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidProduct    = errors.New("invalid product parameters")
)

// Service owns product records: field validation, image persistence via the
// configured file store, and atomic stock mutation.
type Service struct {
	repo  ProductRepository
	files storage.FileStore
}

func NewService(repo ProductRepository, files storage.FileStore) *Service {
	return &Service{repo: repo, files: files}
}

// ProductInput carries product fields for create and partial update. Nil
// pointers on update mean "leave unchanged". Image is the raw upload, nil
// when no file was supplied.
type ProductInput struct {
	Name      *string
	Price     *float64
	Stock     *int
	Image     []byte
	ImageName string
}

// List returns the catalog newest-created first. Read-only and safe to
// re-invoke any number of times.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Get returns a single product.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

// Create validates and inserts a product. The image, when supplied, is
// stored first so a storage failure never leaves a half-created record.
func (s *Service) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, ErrInvalidProduct
	}
	if input.Price == nil || *input.Price <= 0 {
		return nil, ErrInvalidProduct
	}
	if input.Stock == nil || *input.Stock < 0 {
		return nil, ErrInvalidProduct
	}

	var image string
	if len(input.Image) > 0 {
		ref, err := s.files.Store(ctx, input.Image, input.ImageName)
		if err != nil {
			return nil, err
		}
		image = ref
	}

	product := &domain.Product{
		ID:        common.UUIDint64(),
		Name:      strings.TrimSpace(*input.Name),
		Price:     *input.Price,
		Stock:     *input.Stock,
		Image:     image,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	zap.L().Info("product created",
		zap.Int64("id", product.ID),
		zap.String("name", product.Name),
		zap.Int("stock", product.Stock))
	return product, nil
}

// Update applies a partial update, re-validating any supplied field. A new
// image replaces the reference; the old file is left for the sweep job.
func (s *Service) Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	values := map[string]interface{}{"updated_at": time.Now()}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrInvalidProduct
		}
		values["name"] = name
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, ErrInvalidProduct
		}
		values["price"] = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrInvalidProduct
		}
		values["stock"] = *input.Stock
	}
	if len(input.Image) > 0 {
		ref, err := s.files.Store(ctx, input.Image, input.ImageName)
		if err != nil {
			return nil, err
		}
		values["image"] = ref
	}

	if err := s.repo.Updates(ctx, id, values); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes a product. Deleting a missing ID is a no-op, repeated
// deletes are not errors.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ReduceStock atomically decrements stock for a sale and returns the
// remaining count.
func (s *Service) ReduceStock(ctx context.Context, id int64, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidProduct
	}
	remaining, err := s.repo.ReduceStock(ctx, id, quantity)
	if err != nil {
		return remaining, err
	}
	zap.L().Info("stock reduced",
		zap.Int64("product_id", id),
		zap.Int("quantity", quantity),
		zap.Int("remaining", remaining))
	return remaining, nil
}
