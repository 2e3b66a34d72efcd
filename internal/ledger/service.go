package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/talkincode/shopcore/internal/domain"
	"github.com/talkincode/shopcore/pkg/common"
	"go.uber.org/zap"
)

var ErrInvalidTransaction = errors.New("invalid transaction parameters")

// Service records completed sales. It is the sole writer of the ledger and
// never touches product stock: the caller reduces stock separately. The two
// operations share no transaction boundary, so a crash between them can
// leave a sale without a matching decrement (inherited design gap).
type Service struct {
	repo TransactionRepository
}

func NewService(repo TransactionRepository) *Service {
	return &Service{repo: repo}
}

// Record appends an immutable sale entry with a server-assigned timestamp.
// ProductName is stored as a snapshot, not a live reference.
func (s *Service) Record(ctx context.Context, productName string, quantity int, totalPrice float64) (*domain.Transaction, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" || quantity <= 0 || totalPrice <= 0 {
		return nil, ErrInvalidTransaction
	}

	tx := &domain.Transaction{
		ID:          common.UUIDint64(),
		ProductName: productName,
		Quantity:    quantity,
		TotalPrice:  totalPrice,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}

	zap.L().Info("sale recorded",
		zap.Int64("id", tx.ID),
		zap.String("product", tx.ProductName),
		zap.Int("quantity", tx.Quantity),
		zap.Float64("total", tx.TotalPrice))
	return tx, nil
}

// List returns the ledger, most recent first.
func (s *Service) List(ctx context.Context) ([]domain.Transaction, error) {
	return s.repo.List(ctx)
}

// DailySummary returns today's sale count and revenue.
func (s *Service) DailySummary(ctx context.Context) (int64, float64, error) {
	year, month, day := time.Now().Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return s.repo.SumSince(ctx, midnight)
}
