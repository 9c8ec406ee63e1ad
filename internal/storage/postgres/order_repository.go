package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

// Формат хранения дат заказа совпадает со SQLite-бэкендом: ISO-8601 текстом,
// чтобы интерчейндж-документы были переносимы между бэкендами.
const orderDateLayout = time.RFC3339Nano

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// Add вставляет заказ вместе с позициями в одной транзакции.
func (r *orderRepository) Add(order domain.Order) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (client_id, order_date, total)
		VALUES ($1, $2, $3)
		RETURNING id
	`, order.ClientID, order.OrderDate.Format(orderDateLayout), order.Total).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	if err = insertItemsTx(ctx, tx, orderID, order.Items); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit add order: %w", err)
	}
	return orderID, nil
}

func (r *orderRepository) Get(id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var order domain.Order
	var rawDate string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, order_date, total FROM orders WHERE id = $1
	`, id).Scan(&order.ID, &order.ClientID, &rawDate, &order.Total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	if order.OrderDate, err = time.Parse(orderDateLayout, rawDate); err != nil {
		return domain.Order{}, fmt.Errorf("parse order date %q: %w", rawDate, err)
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items
	return order, nil
}

func (r *orderRepository) GetAll() ([]domain.Order, error) {
	return r.queryOrders(`SELECT id, client_id, order_date, total FROM orders ORDER BY id`)
}

func (r *orderRepository) GetByClient(clientID int64) ([]domain.Order, error) {
	return r.queryOrders(
		`SELECT id, client_id, order_date, total FROM orders WHERE client_id = $1 ORDER BY id`,
		clientID,
	)
}

// Update перезаписывает шапку и заменяет набор позиций в одной транзакции.
func (r *orderRepository) Update(order domain.Order) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	res, err = tx.ExecContext(ctx, `
		UPDATE orders SET client_id = $1, order_date = $2, total = $3 WHERE id = $4
	`, order.ClientID, order.OrderDate.Format(orderDateLayout), order.Total, order.ID)
	if err != nil {
		return false, fmt.Errorf("update order: %w", err)
	}
	var affected int64
	affected, err = res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		_ = tx.Rollback()
		return false, nil
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return false, fmt.Errorf("delete old order items: %w", err)
	}
	if err = insertItemsTx(ctx, tx, order.ID, order.Items); err != nil {
		return false, err
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit update order: %w", err)
	}
	return true, nil
}

// Delete удаляет сначала позиции, затем шапку.
func (r *orderRepository) Delete(id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return false, fmt.Errorf("delete order items: %w", err)
	}

	var res sql.Result
	res, err = tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	var affected int64
	affected, err = res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete order: %w", err)
	}
	return affected > 0, nil
}

// Restore вставляет заказ с сохранением исходного идентификатора.
func (r *orderRepository) Restore(order domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, client_id, order_date, total)
		VALUES ($1, $2, $3, $4)
	`, order.ID, order.ClientID, order.OrderDate.Format(orderDateLayout), order.Total); err != nil {
		return fmt.Errorf("restore order: %w", err)
	}
	if err = insertItemsTx(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `
		SELECT setval(pg_get_serial_sequence('orders', 'id'), (SELECT MAX(id) FROM orders))
	`); err != nil {
		return fmt.Errorf("advance orders sequence: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit restore order: %w", err)
	}
	return nil
}

func (r *orderRepository) queryOrders(query string, args ...any) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		var rawDate string
		if err := rows.Scan(&order.ID, &order.ClientID, &rawDate, &order.Total); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		if order.OrderDate, err = time.Parse(orderDateLayout, rawDate); err != nil {
			return nil, fmt.Errorf("parse order date %q: %w", rawDate, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var productID, quantity int64
		var price float64
		if err := rows.Scan(&productID, &quantity, &price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, domain.NewOrderItem(productID, quantity, price))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}
	return items, nil
}

func insertItemsTx(ctx context.Context, tx *sql.Tx, orderID int64, items []domain.OrderItem) error {
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
		`, orderID, item.ProductID, item.Quantity, item.Price); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
