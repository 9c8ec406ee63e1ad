package domain_test

import (
	"testing"
	"time"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

// helper для заказа с двумя позициями.
func makeOrder() domain.Order {
	items := []domain.OrderItem{
		domain.NewOrderItem(1, 2, 500),
		domain.NewOrderItem(2, 1, 20),
	}
	return domain.NewOrder(1, items, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
}

func TestNewOrderItem_Total(t *testing.T) {
	item := domain.NewOrderItem(7, 3, 19.5)
	if item.Total != 58.5 {
		t.Fatalf("expected total 58.5, got %v", item.Total)
	}

	item.SetQuantity(2)
	if item.Total != 39 {
		t.Fatalf("expected total 39 after SetQuantity, got %v", item.Total)
	}

	item.SetPrice(10)
	if item.Total != 20 {
		t.Fatalf("expected total 20 after SetPrice, got %v", item.Total)
	}
}

func TestNewOrder_TotalInvariant(t *testing.T) {
	order := makeOrder()
	if order.Total != 1020 {
		t.Fatalf("expected total 1020, got %v", order.Total)
	}
	if order.Total != order.ItemsTotal() {
		t.Fatalf("total %v does not match items sum %v", order.Total, order.ItemsTotal())
	}
}

func TestNewOrder_DefaultDate(t *testing.T) {
	before := time.Now()
	order := domain.NewOrder(1, nil, time.Time{})
	after := time.Now()

	if order.OrderDate.Before(before) || order.OrderDate.After(after) {
		t.Fatalf("expected default date within [%v, %v], got %v", before, after, order.OrderDate)
	}
}

func TestOrderAddItem_KeepsInvariant(t *testing.T) {
	order := makeOrder()
	order.AddItem(domain.NewOrderItem(3, 4, 2.5))

	if len(order.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(order.Items))
	}
	if order.Total != 1030 {
		t.Fatalf("expected total 1030, got %v", order.Total)
	}
	if order.Total != order.ItemsTotal() {
		t.Fatalf("total %v does not match items sum %v", order.Total, order.ItemsTotal())
	}
}

func TestOrderRemoveItem(t *testing.T) {
	order := makeOrder()

	if !order.RemoveItem(1) {
		t.Fatal("expected RemoveItem(1) to succeed")
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item left, got %d", len(order.Items))
	}
	if order.Total != 20 {
		t.Fatalf("expected total 20 after removal, got %v", order.Total)
	}
	if order.Total != order.ItemsTotal() {
		t.Fatalf("total %v does not match items sum %v", order.Total, order.ItemsTotal())
	}

	// Удаление отсутствующего товара ничего не меняет.
	if order.RemoveItem(99) {
		t.Fatal("expected RemoveItem(99) to fail")
	}
	if order.Total != 20 {
		t.Fatalf("total changed after failed removal: %v", order.Total)
	}
}
