package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/talkincode/shopcore/internal/domain"
	"github.com/talkincode/shopcore/internal/storage"
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

func newTestService(t *testing.T) *Service {
	files, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("local store init failed: %v", err)
	}
	return NewService(NewGormProductRepository(setupTestDB(t)), files)
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ProductInput
	}{
		{"missing name", ProductInput{Price: floatPtr(10), Stock: intPtr(1)}},
		{"blank name", ProductInput{Name: strPtr("   "), Price: floatPtr(10), Stock: intPtr(1)}},
		{"zero price", ProductInput{Name: strPtr("x"), Price: floatPtr(0), Stock: intPtr(1)}},
		{"negative price", ProductInput{Name: strPtr("x"), Price: floatPtr(-1), Stock: intPtr(1)}},
		{"negative stock", ProductInput{Name: strPtr("x"), Price: floatPtr(10), Stock: intPtr(-1)}},
		{"missing stock", ProductInput{Name: strPtr("x"), Price: floatPtr(10)}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.input); !errors.Is(err, ErrInvalidProduct) {
			t.Errorf("%s: expected ErrInvalidProduct, got %v", tc.name, err)
		}
	}

	product, err := svc.Create(ctx, ProductInput{Name: strPtr("Apple"), Price: floatPtr(10000), Stock: intPtr(50)})
	if err != nil {
		t.Fatalf("valid create failed: %v", err)
	}
	if product.Stock != 50 || product.Price != 10000 || product.Name != "Apple" {
		t.Errorf("stored product %+v does not match input", product)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := svc.Create(ctx, ProductInput{Name: strPtr(name), Price: floatPtr(1), Stock: intPtr(0)}); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
	}

	products, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	if products[0].Name != "third" || products[2].Name != "first" {
		t.Errorf("list not newest-first: %s, %s, %s", products[0].Name, products[1].Name, products[2].Name)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductInput{Name: strPtr("Widget"), Price: floatPtr(5), Stock: intPtr(10)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(ctx, product.ID, ProductInput{Price: floatPtr(7.5)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Price != 7.5 {
		t.Errorf("price = %v, want 7.5", updated.Price)
	}
	if updated.Name != "Widget" || updated.Stock != 10 {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	if _, err := svc.Update(ctx, product.ID, ProductInput{Price: floatPtr(-1)}); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct, got %v", err)
	}
	if _, err := svc.Update(ctx, 99999, ProductInput{Price: floatPtr(1)}); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestDeleteProductIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductInput{Name: strPtr("Gone"), Price: floatPtr(1), Stock: intPtr(0)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	// repeated and never-existed deletes are no-op successes
	if err := svc.Delete(ctx, product.ID); err != nil {
		t.Errorf("second delete errored: %v", err)
	}
	if err := svc.Delete(ctx, 424242); err != nil {
		t.Errorf("delete of missing id errored: %v", err)
	}
}

func TestReduceStockScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product, err := svc.Create(ctx, ProductInput{Name: strPtr("Apple"), Price: floatPtr(10000), Stock: intPtr(50)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	remaining, err := svc.ReduceStock(ctx, product.ID, 20)
	if err != nil {
		t.Fatalf("reduce failed: %v", err)
	}
	if remaining != 30 {
		t.Errorf("remaining = %d, want 30", remaining)
	}

	if _, err := svc.ReduceStock(ctx, product.ID, 40); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	current, err := svc.Get(ctx, product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if current.Stock != 30 {
		t.Errorf("stock after rejected reduce = %d, want 30", current.Stock)
	}

	if _, err := svc.ReduceStock(ctx, 77777, 1); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.ReduceStock(ctx, product.ID, 0); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct for zero quantity, got %v", err)
	}
}

func TestReduceStockConcurrent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	const initialStock = 100
	const workers = 20
	const each = 5 // workers*each == initialStock

	product, err := svc.Create(ctx, ProductInput{Name: strPtr("Hotcake"), Price: floatPtr(1), Stock: intPtr(initialStock)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ReduceStock(ctx, product.ID, each); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent reduce failed: %v", err)
	}

	current, err := svc.Get(ctx, product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if current.Stock != 0 {
		t.Errorf("lost updates: final stock = %d, want 0", current.Stock)
	}
}

func TestReduceStockConcurrentOverdraft(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// 10 workers want 30 each but only 90 exist: exactly 3 can succeed
	product, err := svc.Create(ctx, ProductInput{Name: strPtr("Scarce"), Price: floatPtr(1), Stock: intPtr(90)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ReduceStock(ctx, product.ID, 30)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrInsufficientStock):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 3 || rejected != 7 {
		t.Errorf("succeeded=%d rejected=%d, want 3/7", succeeded, rejected)
	}

	current, err := svc.Get(ctx, product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if current.Stock != 0 {
		t.Errorf("final stock = %d, want 0", current.Stock)
	}
	if current.Stock < 0 {
		t.Error("overdraft occurred")
	}
}

func TestCreateWithImageStoresBeforeRecord(t *testing.T) {
	dir := t.TempDir()
	files, err := storage.NewLocalStore(dir)
	if err != nil {
		t.Fatalf("local store init failed: %v", err)
	}
	svc := NewService(NewGormProductRepository(setupTestDB(t)), files)
	ctx := context.Background()

	imageBytes := []byte("fake-png-bytes")
	product, err := svc.Create(ctx, ProductInput{
		Name:      strPtr("Pictured"),
		Price:     floatPtr(3),
		Stock:     intPtr(1),
		Image:     imageBytes,
		ImageName: "photo.png",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Image == "" {
		t.Fatal("image reference not recorded")
	}

	got, err := files.Fetch(ctx, product.Image)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if string(got) != string(imageBytes) {
		t.Error("fetched bytes differ from stored bytes")
	}
}
