package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/talkincode/shopcore/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository handles database operations for catalog items
type ProductRepository interface {
	// Create inserts a new product
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// Updates applies a partial column update
	Updates(ctx context.Context, id int64, values map[string]interface{}) error

	// List retrieves all products, newest-created first
	List(ctx context.Context) ([]domain.Product, error)

	// Delete removes a product; missing IDs are a no-op
	Delete(ctx context.Context, id int64) error

	// ReduceStock atomically checks and decrements stock in a single
	// conditional UPDATE, returning the remaining stock
	ReduceStock(ctx context.Context, id int64, quantity int) (int, error)
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) Updates(ctx context.Context, id int64, values map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(values).Error
}

func (r *GormProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error
}

// ReduceStock executes `stock = stock - ? WHERE id = ? AND stock >= ?` so
// the precondition check and the decrement are one statement. Two
// concurrent sales can never both pass the guard and overdraw.
func (r *GormProductRepository) ReduceStock(ctx context.Context, id int64, quantity int) (int, error) {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		// distinguish a missing row from a failed guard
		var product domain.Product
		err := r.db.WithContext(ctx).First(&product, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProductNotFound
		}
		if err != nil {
			return 0, err
		}
		return product.Stock, ErrInsufficientStock
	}

	product, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return product.Stock, nil
}
