package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

// clientRepositoryInMemory — простая in-memory реализация ClientRepository.
// Повторяет контракт SQLite-бэкенда, включая уникальность email.
type clientRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Client
	nextID int64
}

// NewClientRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewClientRepository() domain.ClientRepository {
	return &clientRepositoryInMemory{
		items:  make(map[int64]domain.Client),
		nextID: 1,
	}
}

// Add сохраняет клиента под новым идентификатором.
func (r *clientRepositoryInMemory) Add(client domain.Client) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkEmailUnique(client.Email, 0); err != nil {
		return 0, err
	}

	client.ID = r.nextID
	r.nextID++
	r.items[client.ID] = client
	return client.ID, nil
}

// Get возвращает клиента или ErrClientNotFound.
func (r *clientRepositoryInMemory) Get(id int64) (domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.items[id]
	if !ok {
		return domain.Client{}, domain.ErrClientNotFound
	}
	return client, nil
}

// GetAll возвращает всех клиентов, отсортированных по идентификатору.
func (r *clientRepositoryInMemory) GetAll() ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Client, 0, len(r.items))
	for _, client := range r.items {
		result = append(result, client)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update перезаписывает клиента, если он существует.
func (r *clientRepositoryInMemory) Update(client domain.Client) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[client.ID]; !ok {
		return false, nil
	}
	if err := r.checkEmailUnique(client.Email, client.ID); err != nil {
		return false, err
	}
	r.items[client.ID] = client
	return true, nil
}

// Delete удаляет клиента, не трогая его заказы.
func (r *clientRepositoryInMemory) Delete(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// Restore вставляет клиента с сохранением исходного идентификатора.
func (r *clientRepositoryInMemory) Restore(client domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[client.ID]; ok {
		return fmt.Errorf("restore client: id %d already exists", client.ID)
	}
	if err := r.checkEmailUnique(client.Email, client.ID); err != nil {
		return err
	}
	r.items[client.ID] = client
	if client.ID >= r.nextID {
		r.nextID = client.ID + 1
	}
	return nil
}

func (r *clientRepositoryInMemory) checkEmailUnique(email string, selfID int64) error {
	for _, existing := range r.items {
		if existing.Email == email && existing.ID != selfID {
			return fmt.Errorf("insert client: email %q already exists", email)
		}
	}
	return nil
}

var _ domain.ClientRepository = (*clientRepositoryInMemory)(nil)
