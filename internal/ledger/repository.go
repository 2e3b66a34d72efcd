package ledger

import (
	"context"
	"time"

	"github.com/talkincode/shopcore/internal/domain"
	"gorm.io/gorm"
)

// TransactionRepository is the append-only store for sale records. No
// update or delete operations exist on purpose.
type TransactionRepository interface {
	// Create appends an immutable sale entry
	Create(ctx context.Context, tx *domain.Transaction) error

	// List retrieves all entries, most recent first
	List(ctx context.Context) ([]domain.Transaction, error)

	// SumSince aggregates count and revenue since a point in time
	SumSince(ctx context.Context, since time.Time) (int64, float64, error)
}

// GormTransactionRepository is the GORM implementation of TransactionRepository
type GormTransactionRepository struct {
	db *gorm.DB
}

func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *GormTransactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&txs).Error
	return txs, err
}

func (r *GormTransactionRepository) SumSince(ctx context.Context, since time.Time) (int64, float64, error) {
	var result struct {
		Count int64
		Total float64
	}
	err := r.db.WithContext(ctx).Model(&domain.Transaction{}).
		Select("COUNT(*) as count, COALESCE(SUM(total_price), 0) as total").
		Where("created_at >= ?", since).
		Scan(&result).Error
	return result.Count, result.Total, err
}
