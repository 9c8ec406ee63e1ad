package memory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
	"github.com/vladislavdragonenkov/shopcore/internal/storage/memory"
)

func TestClientRepository_Contract(t *testing.T) {
	repo := memory.NewClientRepository()

	id, err := repo.Add(domain.Client{ID: 500, Name: "Иван", Email: "ivan@example.com", Phone: "+79161234567", Address: "Москва"})
	require.NoError(t, err)
	require.Equal(t, int64(1), id, "caller-supplied id is ignored")

	_, err = repo.Add(domain.Client{Name: "Дубль", Email: "ivan@example.com", Phone: "+79161234567", Address: "Тверь"})
	require.Error(t, err, "duplicate email must fail like the sqlite unique constraint")

	got, err := repo.Get(id)
	require.NoError(t, err)
	require.Equal(t, "Иван", got.Name)

	updated, err := repo.Update(domain.Client{ID: 99, Name: "x", Email: "x@example.com", Phone: "+79161234567"})
	require.NoError(t, err)
	require.False(t, updated)

	deleted, err := repo.Delete(id)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = repo.Get(id)
	require.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestProductRepository_Contract(t *testing.T) {
	repo := memory.NewProductRepository()

	id, err := repo.Add(domain.NewProduct("Книга", 20, "Книги", 5))
	require.NoError(t, err)

	got, err := repo.Get(id)
	require.NoError(t, err)
	require.Equal(t, 20.0, got.Price)

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, err = repo.Get(99)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestOrderRepository_Contract(t *testing.T) {
	repo := memory.NewOrderRepository()

	order := domain.NewOrder(1, []domain.OrderItem{
		domain.NewOrderItem(1, 2, 500),
		domain.NewOrderItem(2, 1, 20),
	}, time.Now())

	id, err := repo.Add(order)
	require.NoError(t, err)

	got, err := repo.Get(id)
	require.NoError(t, err)
	require.Equal(t, 1020.0, got.Total)

	// Снимок не связан с хранилищем: мутация копии не видна при повторном чтении.
	got.AddItem(domain.NewOrderItem(3, 1, 1))
	reread, err := repo.Get(id)
	require.NoError(t, err)
	require.Len(t, reread.Items, 2)

	byClient, err := repo.GetByClient(1)
	require.NoError(t, err)
	require.Len(t, byClient, 1)

	deleted, err := repo.Delete(id)
	require.NoError(t, err)
	require.True(t, deleted)
}

func TestOrderRepository_AddIsAtomic(t *testing.T) {
	repo := memory.NewOrderRepository()

	order := domain.NewOrder(1, nil, time.Now())
	order.Items = []domain.OrderItem{
		domain.NewOrderItem(1, 2, 500),
		{ProductID: 2, Quantity: 0, Price: 20},
	}

	_, err := repo.Add(order)
	require.Error(t, err)

	orders, err := repo.GetAll()
	require.NoError(t, err)
	require.Empty(t, orders, "no header without all items")
}

func TestRepositories_Restore(t *testing.T) {
	clients := memory.NewClientRepository()
	orders := memory.NewOrderRepository()

	require.NoError(t, clients.Restore(domain.Client{ID: 7, Name: "Иван", Email: "ivan@example.com", Phone: "+79161234567"}))
	require.Error(t, clients.Restore(domain.Client{ID: 7, Name: "Иван", Email: "ivan2@example.com", Phone: "+79161234567"}),
		"restore over an existing id must fail")

	order := domain.NewOrder(7, []domain.OrderItem{domain.NewOrderItem(1, 1, 10)}, time.Now())
	order.ID = 40
	require.NoError(t, orders.Restore(order))

	id, err := orders.Add(domain.NewOrder(7, []domain.OrderItem{domain.NewOrderItem(1, 1, 10)}, time.Now()))
	require.NoError(t, err)
	require.Greater(t, id, int64(40), "restored ids must not be reissued")
}
