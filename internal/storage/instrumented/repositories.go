// Package instrumented оборачивает репозитории хранилища записью метрик:
// каждый вызов фиксирует счётчик операций, длительность и ошибки.
package instrumented

import (
	"time"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
	"github.com/vladislavdragonenkov/shopcore/internal/metrics"
)

type clientRepository struct {
	next domain.ClientRepository
	m    *metrics.StoreMetrics
}

type productRepository struct {
	next domain.ProductRepository
	m    *metrics.StoreMetrics
}

type orderRepository struct {
	next domain.OrderRepository
	m    *metrics.StoreMetrics
}

// NewClientRepository оборачивает репозиторий клиентов записью метрик.
func NewClientRepository(next domain.ClientRepository, m *metrics.StoreMetrics) domain.ClientRepository {
	return &clientRepository{next: next, m: m}
}

// NewProductRepository оборачивает репозиторий товаров записью метрик.
func NewProductRepository(next domain.ProductRepository, m *metrics.StoreMetrics) domain.ProductRepository {
	return &productRepository{next: next, m: m}
}

// NewOrderRepository оборачивает репозиторий заказов записью метрик.
func NewOrderRepository(next domain.OrderRepository, m *metrics.StoreMetrics) domain.OrderRepository {
	return &orderRepository{next: next, m: m}
}

func (r *clientRepository) Add(client domain.Client) (int64, error) {
	start := time.Now()
	id, err := r.next.Add(client)
	r.m.ObserveOp("client", "add", time.Since(start), err)
	return id, err
}

func (r *clientRepository) Get(id int64) (domain.Client, error) {
	start := time.Now()
	client, err := r.next.Get(id)
	r.m.ObserveOp("client", "get", time.Since(start), err)
	return client, err
}

func (r *clientRepository) GetAll() ([]domain.Client, error) {
	start := time.Now()
	clients, err := r.next.GetAll()
	r.m.ObserveOp("client", "get_all", time.Since(start), err)
	return clients, err
}

func (r *clientRepository) Update(client domain.Client) (bool, error) {
	start := time.Now()
	ok, err := r.next.Update(client)
	r.m.ObserveOp("client", "update", time.Since(start), err)
	return ok, err
}

func (r *clientRepository) Delete(id int64) (bool, error) {
	start := time.Now()
	ok, err := r.next.Delete(id)
	r.m.ObserveOp("client", "delete", time.Since(start), err)
	return ok, err
}

func (r *clientRepository) Restore(client domain.Client) error {
	start := time.Now()
	err := r.next.Restore(client)
	r.m.ObserveOp("client", "restore", time.Since(start), err)
	return err
}

func (r *productRepository) Add(product domain.Product) (int64, error) {
	start := time.Now()
	id, err := r.next.Add(product)
	r.m.ObserveOp("product", "add", time.Since(start), err)
	return id, err
}

func (r *productRepository) Get(id int64) (domain.Product, error) {
	start := time.Now()
	product, err := r.next.Get(id)
	r.m.ObserveOp("product", "get", time.Since(start), err)
	return product, err
}

func (r *productRepository) GetAll() ([]domain.Product, error) {
	start := time.Now()
	products, err := r.next.GetAll()
	r.m.ObserveOp("product", "get_all", time.Since(start), err)
	return products, err
}

func (r *productRepository) Update(product domain.Product) (bool, error) {
	start := time.Now()
	ok, err := r.next.Update(product)
	r.m.ObserveOp("product", "update", time.Since(start), err)
	return ok, err
}

func (r *productRepository) Delete(id int64) (bool, error) {
	start := time.Now()
	ok, err := r.next.Delete(id)
	r.m.ObserveOp("product", "delete", time.Since(start), err)
	return ok, err
}

func (r *productRepository) Restore(product domain.Product) error {
	start := time.Now()
	err := r.next.Restore(product)
	r.m.ObserveOp("product", "restore", time.Since(start), err)
	return err
}

func (r *orderRepository) Add(order domain.Order) (int64, error) {
	start := time.Now()
	id, err := r.next.Add(order)
	r.m.ObserveOp("order", "add", time.Since(start), err)
	return id, err
}

func (r *orderRepository) Get(id int64) (domain.Order, error) {
	start := time.Now()
	order, err := r.next.Get(id)
	r.m.ObserveOp("order", "get", time.Since(start), err)
	return order, err
}

func (r *orderRepository) GetAll() ([]domain.Order, error) {
	start := time.Now()
	orders, err := r.next.GetAll()
	r.m.ObserveOp("order", "get_all", time.Since(start), err)
	return orders, err
}

func (r *orderRepository) GetByClient(clientID int64) ([]domain.Order, error) {
	start := time.Now()
	orders, err := r.next.GetByClient(clientID)
	r.m.ObserveOp("order", "get_by_client", time.Since(start), err)
	return orders, err
}

func (r *orderRepository) Update(order domain.Order) (bool, error) {
	start := time.Now()
	ok, err := r.next.Update(order)
	r.m.ObserveOp("order", "update", time.Since(start), err)
	return ok, err
}

func (r *orderRepository) Delete(id int64) (bool, error) {
	start := time.Now()
	ok, err := r.next.Delete(id)
	r.m.ObserveOp("order", "delete", time.Since(start), err)
	return ok, err
}

func (r *orderRepository) Restore(order domain.Order) error {
	start := time.Now()
	err := r.next.Restore(order)
	r.m.ObserveOp("order", "restore", time.Since(start), err)
	return err
}

var (
	_ domain.ClientRepository  = (*clientRepository)(nil)
	_ domain.ProductRepository = (*productRepository)(nil)
	_ domain.OrderRepository   = (*orderRepository)(nil)
)
