package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

// Даты заказов хранятся текстом в ISO-8601 с наносекундной точностью,
// чтобы экспорт/импорт воспроизводил их бит в бит.
const orderDateLayout = time.RFC3339Nano

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт SQLite-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// Add вставляет заказ вместе с позициями в одной транзакции.
// Частичная запись (шапка без позиций) снаружи не наблюдаема.
func (r *orderRepository) Add(order domain.Order) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	res, err = tx.Exec(
		`INSERT INTO orders (client_id, order_date, total) VALUES (?, ?, ?)`,
		order.ClientID, order.OrderDate.Format(orderDateLayout), order.Total,
	)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	var orderID int64
	orderID, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("order insert id: %w", err)
	}

	if err = insertItems(tx, orderID, order.Items); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit add order: %w", err)
	}
	return orderID, nil
}

// Get возвращает заказ с позициями или ErrOrderNotFound.
func (r *orderRepository) Get(id int64) (domain.Order, error) {
	order, err := scanOrderHeader(r.db.QueryRow(
		`SELECT id, client_id, order_date, total FROM orders WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items
	return order, nil
}

// GetAll возвращает все заказы в порядке идентификаторов.
func (r *orderRepository) GetAll() ([]domain.Order, error) {
	return r.queryOrders(`SELECT id, client_id, order_date, total FROM orders ORDER BY id`)
}

// GetByClient возвращает все заказы клиента.
func (r *orderRepository) GetByClient(clientID int64) ([]domain.Order, error) {
	return r.queryOrders(
		`SELECT id, client_id, order_date, total FROM orders WHERE client_id = ? ORDER BY id`,
		clientID,
	)
}

// Update перезаписывает шапку заказа и полностью заменяет набор позиций
// в одной транзакции. (false, nil) — заказа с таким ID нет.
func (r *orderRepository) Update(order domain.Order) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	res, err = tx.Exec(
		`UPDATE orders SET client_id = ?, order_date = ?, total = ? WHERE id = ?`,
		order.ClientID, order.OrderDate.Format(orderDateLayout), order.Total, order.ID,
	)
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

	if _, err = tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, order.ID); err != nil {
		return false, fmt.Errorf("delete old order items: %w", err)
	}
	if err = insertItems(tx, order.ID, order.Items); err != nil {
		return false, err
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit update order: %w", err)
	}
	return true, nil
}

// Delete удаляет сначала позиции, затем шапку: позиции ссылаются на шапку
// по идентификатору, и порядок child-before-parent здесь обязателен.
func (r *orderRepository) Delete(id int64) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete order items: %w", err)
	}

	var res sql.Result
	res, err = tx.Exec(`DELETE FROM orders WHERE id = ?`, id)
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
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(
		`INSERT INTO orders (id, client_id, order_date, total) VALUES (?, ?, ?, ?)`,
		order.ID, order.ClientID, order.OrderDate.Format(orderDateLayout), order.Total,
	); err != nil {
		return fmt.Errorf("restore order: %w", err)
	}
	if err = insertItems(tx, order.ID, order.Items); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit restore order: %w", err)
	}
	return nil
}

func (r *orderRepository) queryOrders(query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrderHeader(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	// Закрываем курсор до дозагрузки позиций: пул держит одно соединение.
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("close order rows: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *orderRepository) loadItems(orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.Query(
		`SELECT product_id, quantity, price FROM order_items WHERE order_id = ? ORDER BY id`,
		orderID,
	)
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

func insertItems(tx *sql.Tx, orderID int64, items []domain.OrderItem) error {
	for _, item := range items {
		if _, err := tx.Exec(
			`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`,
			orderID, item.ProductID, item.Quantity, item.Price,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderHeader(row rowScanner) (domain.Order, error) {
	var order domain.Order
	var rawDate string
	if err := row.Scan(&order.ID, &order.ClientID, &rawDate, &order.Total); err != nil {
		return domain.Order{}, err
	}
	parsed, err := time.Parse(orderDateLayout, rawDate)
	if err != nil {
		return domain.Order{}, fmt.Errorf("parse order date %q: %w", rawDate, err)
	}
	order.OrderDate = parsed
	return order, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
