package main

import (
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/shopcore/internal/app"
)

const (
	envStorageDriver       = "SHOP_STORAGE_DRIVER"
	envSQLitePath          = "SHOP_SQLITE_PATH"
	envPostgresDSN         = "SHOP_POSTGRES_DSN"
	envPostgresAutoMigrate = "SHOP_POSTGRES_AUTO_MIGRATE"
	envMetricsEnabled      = "SHOP_METRICS_ENABLED"
)

// envLookup абстрагирует os.LookupEnv для тестов.
type envLookup func(key string) (string, bool)

// readConfigFromEnv формирует конфигурацию из переменных окружения поверх
// значений по умолчанию. Некорректные значения не прерывают запуск:
// настройка остаётся прежней, а причина попадает в warnings.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	if value, ok := lookup(envStorageDriver); ok {
		driver, err := app.ParseStorageDriver(strings.ToLower(strings.TrimSpace(value)))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envStorageDriver, err))
		} else {
			cfg.StorageDriver = driver
		}
	}
	if value, ok := lookup(envSQLitePath); ok {
		if path := strings.TrimSpace(value); path != "" {
			cfg.SQLitePath = path
		}
	}
	if value, ok := lookup(envPostgresDSN); ok {
		cfg.PostgresDSN = strings.TrimSpace(value)
	}
	if value, ok := lookup(envPostgresAutoMigrate); ok {
		enabled, err := parseBool(value)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envPostgresAutoMigrate, err))
		} else {
			cfg.PostgresAutoMigrate = enabled
		}
	}
	if value, ok := lookup(envMetricsEnabled); ok {
		enabled, err := parseBool(value)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envMetricsEnabled, err))
		} else {
			cfg.MetricsEnabled = enabled
		}
	}

	return cfg, warnings
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %q", value)
	}
}
