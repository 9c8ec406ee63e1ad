package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
// Повторяет CHECK-ограничения SQLite-схемы на позициях, поэтому заказ с
// некорректной позицией отвергается целиком — как и в транзакционной записи.
type orderRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Order
	nextID int64
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items:  make(map[int64]domain.Order),
		nextID: 1,
	}
}

// Add сохраняет заказ под новым идентификатором. Либо фиксируются шапка и
// все позиции, либо ничего.
func (r *orderRepositoryInMemory) Add(order domain.Order) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkItems(order.Items); err != nil {
		return 0, err
	}

	order.ID = r.nextID
	r.nextID++
	// Сохраняем копию позиций, чтобы избежать непредсказуемых мутаций извне.
	order.Items = copyItems(order.Items)
	r.items[order.ID] = order
	return order.ID, nil
}

// Get возвращает заказ или ErrOrderNotFound.
func (r *orderRepositoryInMemory) Get(id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	order.Items = copyItems(order.Items)
	return order, nil
}

// GetAll возвращает все заказы, отсортированные по идентификатору.
func (r *orderRepositoryInMemory) GetAll() ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(domain.Order) bool { return true }), nil
}

// GetByClient возвращает все заказы клиента.
func (r *orderRepositoryInMemory) GetByClient(clientID int64) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o domain.Order) bool { return o.ClientID == clientID }), nil
}

// Update перезаписывает заказ вместе с позициями, если он существует.
func (r *orderRepositoryInMemory) Update(order domain.Order) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[order.ID]; !ok {
		return false, nil
	}
	if err := checkItems(order.Items); err != nil {
		return false, err
	}
	order.Items = copyItems(order.Items)
	r.items[order.ID] = order
	return true, nil
}

// Delete удаляет заказ вместе с позициями.
func (r *orderRepositoryInMemory) Delete(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// Restore вставляет заказ с сохранением исходного идентификатора.
func (r *orderRepositoryInMemory) Restore(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[order.ID]; ok {
		return fmt.Errorf("restore order: id %d already exists", order.ID)
	}
	if err := checkItems(order.Items); err != nil {
		return err
	}
	order.Items = copyItems(order.Items)
	r.items[order.ID] = order
	if order.ID >= r.nextID {
		r.nextID = order.ID + 1
	}
	return nil
}

func (r *orderRepositoryInMemory) collect(keep func(domain.Order) bool) []domain.Order {
	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		if !keep(order) {
			continue
		}
		order.Items = copyItems(order.Items)
		result = append(result, order)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func checkItems(items []domain.OrderItem) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("insert order item: quantity %d violates check constraint", item.Quantity)
		}
		if item.Price < 0 {
			return fmt.Errorf("insert order item: price %v violates check constraint", item.Price)
		}
	}
	return nil
}

func copyItems(items []domain.OrderItem) []domain.OrderItem {
	if items == nil {
		return nil
	}
	out := make([]domain.OrderItem, len(items))
	copy(out, items)
	return out
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
