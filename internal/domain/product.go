package domain

// Product представляет товар каталога.
// Формат полей не проверяется конструктором: цена и остаток — зона
// ответственности вызывающего кода. Остаток уменьшается только прикладной
// логикой, оформление заказа его не трогает.
type Product struct {
	ID       int64
	Name     string
	Price    float64
	Category string
	Stock    int64
}

// NewProduct создаёт товар без идентификатора (его назначит хранилище).
func NewProduct(name string, price float64, category string, stock int64) Product {
	return Product{
		Name:     name,
		Price:    price,
		Category: category,
		Stock:    stock,
	}
}
