package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

const opTimeout = 5 * time.Second

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository создаёт PostgreSQL-реализацию ClientRepository.
func NewClientRepository(store *Store) domain.ClientRepository {
	return &clientRepository{db: store.DB()}
}

func (r *clientRepository) Add(client domain.Client) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO clients (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, client.Name, client.Email, client.Phone, client.Address).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}
	return id, nil
}

func (r *clientRepository) Get(id int64) (domain.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var client domain.Client
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, address FROM clients WHERE id = $1
	`, id).Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, domain.ErrClientNotFound
		}
		return domain.Client{}, fmt.Errorf("select client: %w", err)
	}
	return client, nil
}

func (r *clientRepository) GetAll() ([]domain.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, phone, address FROM clients ORDER BY id
	`)
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

func (r *clientRepository) Update(client domain.Client) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE clients SET name = $1, email = $2, phone = $3, address = $4 WHERE id = $5
	`, client.Name, client.Email, client.Phone, client.Address, client.ID)
	if err != nil {
		return false, fmt.Errorf("update client: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *clientRepository) Delete(id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *clientRepository) Restore(client domain.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
	`, client.ID, client.Name, client.Email, client.Phone, client.Address); err != nil {
		return fmt.Errorf("restore client: %w", err)
	}
	// BIGSERIAL не двигается при явной вставке id, подтягиваем sequence вручную.
	if _, err := r.db.ExecContext(ctx, `
		SELECT setval(pg_get_serial_sequence('clients', 'id'), (SELECT MAX(id) FROM clients))
	`); err != nil {
		return fmt.Errorf("advance clients sequence: %w", err)
	}
	return nil
}

// IsUniqueViolation сообщает, вызвана ли ошибка нарушением unique-ограничения
// (например, дубликат email клиента).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.ClientRepository = (*clientRepository)(nil)
