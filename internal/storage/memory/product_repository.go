package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Product
	nextID int64
}

// NewProductRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items:  make(map[int64]domain.Product),
		nextID: 1,
	}
}

// Add сохраняет товар под новым идентификатором.
func (r *productRepositoryInMemory) Add(product domain.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.items[product.ID] = product
	return product.ID, nil
}

// Get возвращает товар или ErrProductNotFound.
func (r *productRepositoryInMemory) Get(id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// GetAll возвращает все товары, отсортированные по идентификатору.
func (r *productRepositoryInMemory) GetAll() ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update перезаписывает товар, если он существует.
func (r *productRepositoryInMemory) Update(product domain.Product) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; !ok {
		return false, nil
	}
	r.items[product.ID] = product
	return true, nil
}

// Delete удаляет товар.
func (r *productRepositoryInMemory) Delete(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// Restore вставляет товар с сохранением исходного идентификатора.
func (r *productRepositoryInMemory) Restore(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; ok {
		return fmt.Errorf("restore product: id %d already exists", product.ID)
	}
	r.items[product.ID] = product
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
