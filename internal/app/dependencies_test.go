package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

func TestNewDependencies_Memory(t *testing.T) {
	cfg := Config{StorageDriver: StorageDriverMemory}

	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = deps.Close() }()

	if deps.Clients == nil || deps.Products == nil || deps.Orders == nil {
		t.Fatal("repositories should not be nil")
	}
	if deps.Codec == nil {
		t.Error("codec should not be nil")
	}
	if deps.Analyzer == nil {
		t.Error("analyzer should not be nil")
	}
	if deps.Metrics != nil {
		t.Error("metrics should be nil when disabled")
	}
	if deps.Logger == nil {
		t.Error("logger should not be nil")
	}
}

func TestNewDependencies_MetricsEnabled(t *testing.T) {
	cfg := Config{StorageDriver: StorageDriverMemory, MetricsEnabled: true}

	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = deps.Close() }()

	if deps.Metrics == nil {
		t.Fatal("metrics should be initialized when enabled")
	}
}

func TestNewDependencies_SQLite(t *testing.T) {
	cfg := Config{
		StorageDriver: StorageDriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "shop.db"),
	}

	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = deps.Close() }()

	// Полный путь через собранные зависимости: запись, выборка, сводка.
	clientID, err := deps.Clients.Add(domain.Client{
		Name:  "Иван Петров",
		Email: "ivan@example.com",
		Phone: "+79161234567",
	})
	if err != nil {
		t.Fatalf("add client: %v", err)
	}

	productID, err := deps.Products.Add(domain.NewProduct("Книга", 20, "Книги", 50))
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	_, err = deps.Orders.Add(domain.NewOrder(clientID, []domain.OrderItem{
		domain.NewOrderItem(productID, 2, 20),
	}, time.Now().UTC()))
	if err != nil {
		t.Fatalf("add order: %v", err)
	}

	stats, err := deps.Analyzer.SalesStatistics()
	if err != nil {
		t.Fatalf("sales statistics: %v", err)
	}
	if stats.TotalOrders != 1 {
		t.Errorf("expected 1 order, got %d", stats.TotalOrders)
	}
	if stats.TotalRevenue != 40.0 {
		t.Errorf("expected revenue 40.0, got %f", stats.TotalRevenue)
	}
}

func TestNewDependencies_UnknownDriver(t *testing.T) {
	cfg := Config{StorageDriver: StorageDriver("mysql")}

	if _, err := NewDependencies(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
}

func TestNewDependencies_PostgresRequiresDSN(t *testing.T) {
	cfg := Config{StorageDriver: StorageDriverPostgres}

	if _, err := NewDependencies(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error when postgres DSN is missing")
	}
}
