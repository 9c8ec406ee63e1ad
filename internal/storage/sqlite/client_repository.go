package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository создаёт SQLite-реализацию ClientRepository.
func NewClientRepository(store *Store) domain.ClientRepository {
	return &clientRepository{db: store.DB()}
}

// Add вставляет клиента и возвращает присвоенный идентификатор.
// ID из аргумента игнорируется.
func (r *clientRepository) Add(client domain.Client) (int64, error) {
	res, err := r.db.Exec(
		`INSERT INTO clients (name, email, phone, address) VALUES (?, ?, ?, ?)`,
		client.Name, client.Email, client.Phone, client.Address,
	)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("client insert id: %w", err)
	}
	return id, nil
}

// Get возвращает клиента или ErrClientNotFound.
func (r *clientRepository) Get(id int64) (domain.Client, error) {
	var client domain.Client
	err := r.db.QueryRow(
		`SELECT id, name, email, phone, address FROM clients WHERE id = ?`, id,
	).Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, domain.ErrClientNotFound
		}
		return domain.Client{}, fmt.Errorf("select client: %w", err)
	}
	return client, nil
}

// GetAll возвращает всех клиентов в порядке идентификаторов.
func (r *clientRepository) GetAll() ([]domain.Client, error) {
	rows, err := r.db.Query(`SELECT id, name, email, phone, address FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Address); err != nil {
			return nil, fmt.Errorf("scan client row: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client rows: %w", err)
	}
	return clients, nil
}

// Update перезаписывает клиента. (false, nil) — записи с таким ID нет.
func (r *clientRepository) Update(client domain.Client) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE clients SET name = ?, email = ?, phone = ?, address = ? WHERE id = ?`,
		client.Name, client.Email, client.Phone, client.Address, client.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update client: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete удаляет клиента. Заказы клиента не трогаются: ссылки на него
// остаются висячими, читатели подставят placeholder.
func (r *clientRepository) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Restore вставляет клиента с сохранением исходного идентификатора.
func (r *clientRepository) Restore(client domain.Client) error {
	if _, err := r.db.Exec(
		`INSERT INTO clients (id, name, email, phone, address) VALUES (?, ?, ?, ?, ?)`,
		client.ID, client.Name, client.Email, client.Phone, client.Address,
	); err != nil {
		return fmt.Errorf("restore client: %w", err)
	}
	return nil
}

var _ domain.ClientRepository = (*clientRepository)(nil)
