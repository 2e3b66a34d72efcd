package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/talkincode/shopcore/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates a throwaway sqlite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db?_busy_timeout=5000")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return db
}

func TestRecordSale(t *testing.T) {
	svc := NewService(NewGormTransactionRepository(setupTestDB(t)))
	ctx := context.Background()

	before := time.Now()
	tx, err := svc.Record(ctx, "Apple", 2, 20000)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if tx.ProductName != "Apple" || tx.Quantity != 2 || tx.TotalPrice != 20000 {
		t.Errorf("stored transaction %+v does not match input", tx)
	}
	if tx.CreatedAt.Before(before.Add(-time.Second)) {
		t.Error("timestamp not server-assigned")
	}
}

func TestRecordSaleValidation(t *testing.T) {
	svc := NewService(NewGormTransactionRepository(setupTestDB(t)))
	ctx := context.Background()

	cases := []struct {
		name     string
		product  string
		quantity int
		total    float64
	}{
		{"empty name", "", 1, 10},
		{"zero quantity", "Apple", 0, 10},
		{"negative quantity", "Apple", -1, 10},
		{"zero total", "Apple", 1, 0},
		{"negative total", "Apple", 1, -5},
	}
	for _, tc := range cases {
		if _, err := svc.Record(ctx, tc.product, tc.quantity, tc.total); !errors.Is(err, ErrInvalidTransaction) {
			t.Errorf("%s: expected ErrInvalidTransaction, got %v", tc.name, err)
		}
	}
}

func TestListMostRecentFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewGormTransactionRepository(db))
	ctx := context.Background()

	// insert with explicit timestamps so ordering is deterministic
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"oldest", "middle", "newest"} {
		tx := &domain.Transaction{
			ID:          int64(i + 1),
			ProductName: name,
			Quantity:    1,
			TotalPrice:  1,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(tx).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	txs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(txs))
	}
	if txs[0].ProductName != "newest" || txs[2].ProductName != "oldest" {
		t.Errorf("list not most-recent-first: %s, %s, %s",
			txs[0].ProductName, txs[1].ProductName, txs[2].ProductName)
	}
}

func TestLedgerSnapshotSurvivesCatalogChanges(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewGormTransactionRepository(db))
	ctx := context.Background()

	product := &domain.Product{ID: 1, Name: "Original", Price: 5, Stock: 10}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	tx, err := svc.Record(ctx, product.Name, 1, 5)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// rename and delete the product; the ledger entry must keep its snapshot
	db.Model(product).Update("name", "Renamed")
	db.Delete(product)

	txs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(txs) != 1 || txs[0].ID != tx.ID || txs[0].ProductName != "Original" {
		t.Errorf("ledger entry corrupted by catalog mutation: %+v", txs)
	}
}

func TestDailySummary(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewGormTransactionRepository(db))
	ctx := context.Background()

	if _, err := svc.Record(ctx, "Apple", 1, 100); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if _, err := svc.Record(ctx, "Pear", 2, 50); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	count, total, err := svc.DailySummary(ctx)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if count != 2 || total != 150 {
		t.Errorf("summary = (%d, %v), want (2, 150)", count, total)
	}
}
