package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт SQLite-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

// Add вставляет товар и возвращает присвоенный идентификатор.
func (r *productRepository) Add(product domain.Product) (int64, error) {
	res, err := r.db.Exec(
		`INSERT INTO products (name, price, category, stock) VALUES (?, ?, ?, ?)`,
		product.Name, product.Price, product.Category, product.Stock,
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("product insert id: %w", err)
	}
	return id, nil
}

// Get возвращает товар или ErrProductNotFound.
func (r *productRepository) Get(id int64) (domain.Product, error) {
	var product domain.Product
	err := r.db.QueryRow(
		`SELECT id, name, price, category, stock FROM products WHERE id = ?`, id,
	).Scan(&product.ID, &product.Name, &product.Price, &product.Category, &product.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}

// GetAll возвращает все товары в порядке идентификаторов.
func (r *productRepository) GetAll() ([]domain.Product, error) {
	rows, err := r.db.Query(`SELECT id, name, price, category, stock FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Category, &product.Stock); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

// Update перезаписывает товар. (false, nil) — записи с таким ID нет.
func (r *productRepository) Update(product domain.Product) (bool, error) {
	res, err := r.db.Exec(
		`UPDATE products SET name = ?, price = ?, category = ?, stock = ? WHERE id = ?`,
		product.Name, product.Price, product.Category, product.Stock, product.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete удаляет товар.
func (r *productRepository) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Restore вставляет товар с сохранением исходного идентификатора.
func (r *productRepository) Restore(product domain.Product) error {
	if _, err := r.db.Exec(
		`INSERT INTO products (id, name, price, category, stock) VALUES (?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Price, product.Category, product.Stock,
	); err != nil {
		return fmt.Errorf("restore product: %w", err)
	}
	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
