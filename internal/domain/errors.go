package domain

import "errors"

var (
	// ErrInvalidEmail возвращается конструктором клиента при неверном формате email.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrInvalidPhone возвращается конструктором клиента при неверном формате телефона.
	ErrInvalidPhone = errors.New("invalid phone format")
	// ErrClientNotFound возвращается, если клиент не найден в хранилище.
	ErrClientNotFound = errors.New("client not found")
	// ErrProductNotFound возвращается, если товар не найден в хранилище.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
)

// IsNotFound проверяет, является ли ошибка сигналом отсутствия сущности.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}
