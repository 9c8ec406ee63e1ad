package app

import "fmt"

// StorageDriver выбирает реализацию хранилища.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverSQLite   StorageDriver = "sqlite"
	StorageDriverPostgres StorageDriver = "postgres"
)

// ParseStorageDriver проверяет имя драйвера хранилища.
func ParseStorageDriver(name string) (StorageDriver, error) {
	switch StorageDriver(name) {
	case StorageDriverMemory, StorageDriverSQLite, StorageDriverPostgres:
		return StorageDriver(name), nil
	default:
		return "", fmt.Errorf("unsupported storage driver: %q (use memory|sqlite|postgres)", name)
	}
}

// Config описывает настройки запуска приложения.
type Config struct {
	StorageDriver       StorageDriver
	SQLitePath          string
	PostgresDSN         string
	PostgresAutoMigrate bool
	MetricsEnabled      bool
}

// DefaultConfig возвращает базовую конфигурацию: файловое SQLite-хранилище
// рядом с рабочей директорией, метрики включены.
func DefaultConfig() Config {
	return Config{
		StorageDriver:       StorageDriverSQLite,
		SQLitePath:          "shop.db",
		PostgresAutoMigrate: true,
		MetricsEnabled:      true,
	}
}
