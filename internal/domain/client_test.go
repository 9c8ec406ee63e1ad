package domain_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"ivan@example.com", true},
		{"ivan.petrov+shop@mail.ru", true},
		{"a_b%c@sub.domain.org", true},
		{"ivan@example.c", false},
		{"ivan.example.com", false},
		{"@example.com", false},
		{"ivan@", false},
		{"ivan@example", false},
		{"", false},
		{"ivan@exa mple.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			if got := domain.IsValidEmail(tc.email); got != tc.valid {
				t.Fatalf("IsValidEmail(%q) = %v, want %v", tc.email, got, tc.valid)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"+79161234567", true},
		{"89161234567", true},
		{"+7 916 123 45 67", true},
		{"8-916-123-45-67", true},
		{"+7(916)123-45-67", true},
		{"8 (916) 123 45 67", true},
		{"79161234567", false},
		{"+7916123456", false},
		{"+791612345678", false},
		{"+7916123456a", false},
		{"", false},
	}

	for _, tc := range cases {
		t.Run(tc.phone, func(t *testing.T) {
			if got := domain.IsValidPhone(tc.phone); got != tc.valid {
				t.Fatalf("IsValidPhone(%q) = %v, want %v", tc.phone, got, tc.valid)
			}
		})
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := domain.NewClient("Иван Петров", "ivan@example.com", "+79161234567", "Москва"); err != nil {
		t.Fatalf("expected valid client, got error: %v", err)
	}

	if _, err := domain.NewClient("Иван Петров", "not-an-email", "+79161234567", "Москва"); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	if _, err := domain.NewClient("Иван Петров", "ivan@example.com", "12345", "Москва"); !errors.Is(err, domain.ErrInvalidPhone) {
		t.Fatalf("expected ErrInvalidPhone, got %v", err)
	}
}
