package domain

import "regexp"

var (
	// Регулярное выражение для проверки email вида local@domain.tld (TLD от двух букв).
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// Регулярное выражение для российских номеров: префикс +7 или 8 и ровно 10 цифр,
	// допускаются пробелы/дефисы как разделители и скобки вокруг кода.
	phonePattern = regexp.MustCompile(`^(\+7|8)[\s-]?\(?\d{3}\)?[\s-]?\d{3}[\s-]?\d{2}[\s-]?\d{2}$`)
)

// Client представляет клиента магазина.
// Идентификатор присваивается хранилищем при добавлении и далее не меняется.
type Client struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Address string
}

// NewClient создаёт клиента, проверяя формат email и телефона.
// Невалидный Client через конструктор получить нельзя.
func NewClient(name, email, phone, address string) (Client, error) {
	if !IsValidEmail(email) {
		return Client{}, ErrInvalidEmail
	}
	if !IsValidPhone(phone) {
		return Client{}, ErrInvalidPhone
	}
	return Client{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Address: address,
	}, nil
}

// IsValidEmail проверяет формат email.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone проверяет формат номера телефона.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
