package domain

// Контракты хранилища. Для каждой корневой сущности действует один и тот же
// набор операций:
//   - Add присваивает новый идентификатор; идентификатор из аргумента
//     игнорируется, авторитетен возвращаемый.
//   - Get сигнализирует отсутствие sentinel-ошибкой Err*NotFound, любой
//     другой err — сбой хранилища.
//   - Update возвращает (false, nil), если записи с таким ID нет; новую
//     запись он никогда не создаёт.
//   - Delete возвращает (false, nil), если удалять было нечего.
//   - Restore вставляет запись с сохранением её идентификатора; применяется
//     только кодеком импорта.

// ClientRepository описывает требования к хранилищу клиентов.
type ClientRepository interface {
	Add(client Client) (int64, error)
	Get(id int64) (Client, error)
	GetAll() ([]Client, error)
	Update(client Client) (bool, error)
	Delete(id int64) (bool, error)
	Restore(client Client) error
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	Add(product Product) (int64, error)
	Get(id int64) (Product, error)
	GetAll() ([]Product, error)
	Update(product Product) (bool, error)
	Delete(id int64) (bool, error)
	Restore(product Product) error
}

// OrderRepository описывает требования к хранилищу заказов.
// Add, Restore и Update — атомарные много-строчные записи: шапка заказа и
// все позиции фиксируются вместе или не фиксируются вовсе.
type OrderRepository interface {
	Add(order Order) (int64, error)
	Get(id int64) (Order, error)
	GetAll() ([]Order, error)
	// GetByClient возвращает все заказы клиента; порядок выдачи стабилен,
	// но не специфицирован.
	GetByClient(clientID int64) ([]Order, error)
	Update(order Order) (bool, error)
	Delete(id int64) (bool, error)
	Restore(order Order) error
}
