package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
	"github.com/vladislavdragonenkov/shopcore/internal/storage/memory"
	"github.com/vladislavdragonenkov/shopcore/internal/storage/postgres"
	"github.com/vladislavdragonenkov/shopcore/internal/storage/sqlite"
)

type repositories struct {
	clients  domain.ClientRepository
	products domain.ProductRepository
	orders   domain.OrderRepository
}

// initStorage создаёт репозитории по выбранному драйверу и возвращает
// функцию освобождения ресурсов.
func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (repositories, func() error, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		logger.Info("используем in-memory хранилище")
		return repositories{
			clients:  memory.NewClientRepository(),
			products: memory.NewProductRepository(),
			orders:   memory.NewOrderRepository(),
		}, nil, nil

	case StorageDriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.WithField("path", cfg.SQLitePath).Info("используем SQLite хранилище")
		return repositories{
			clients:  sqlite.NewClientRepository(store),
			products: sqlite.NewProductRepository(store),
			orders:   sqlite.NewOrderRepository(store),
		}, store.Close, nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return repositories{}, nil, fmt.Errorf("postgres driver requires a DSN")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("open postgres store: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return repositories{}, nil, fmt.Errorf("ensure postgres schema: %w", err)
			}
		}
		logger.Info("используем PostgreSQL хранилище")
		return repositories{
			clients:  postgres.NewClientRepository(store),
			products: postgres.NewProductRepository(store),
			orders:   postgres.NewOrderRepository(store),
		}, store.Close, nil

	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver: %q", cfg.StorageDriver)
	}
}
