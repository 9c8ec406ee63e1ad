package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcore/internal/analysis"
	"github.com/vladislavdragonenkov/shopcore/internal/domain"
	"github.com/vladislavdragonenkov/shopcore/internal/interchange"
	"github.com/vladislavdragonenkov/shopcore/internal/metrics"
	"github.com/vladislavdragonenkov/shopcore/internal/storage/instrumented"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Clients  domain.ClientRepository
	Products domain.ProductRepository
	Orders   domain.OrderRepository
	Codec    *interchange.Codec
	Analyzer *analysis.Analyzer
	Metrics  *metrics.StoreMetrics
	Logger   *log.Entry

	closeStorage func() error
}

// NewDependencies создаёт и инициализирует все зависимости приложения:
// хранилище по выбранному драйверу, метрики, кодек обмена и анализатор.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	repos, closeStorage, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	deps := &Dependencies{
		Clients:      repos.clients,
		Products:     repos.products,
		Orders:       repos.orders,
		Logger:       logger,
		closeStorage: closeStorage,
	}

	if cfg.MetricsEnabled {
		deps.Metrics = metrics.NewStoreMetrics()
		deps.Clients = instrumented.NewClientRepository(deps.Clients, deps.Metrics)
		deps.Products = instrumented.NewProductRepository(deps.Products, deps.Metrics)
		deps.Orders = instrumented.NewOrderRepository(deps.Orders, deps.Metrics)
	}

	deps.Codec = interchange.NewCodec(deps.Clients, deps.Products, deps.Orders,
		logger.WithField("component", "interchange"))
	if deps.Metrics != nil {
		deps.Codec = deps.Codec.WithMetrics(deps.Metrics)
	}
	deps.Analyzer = analysis.NewAnalyzer(deps.Clients, deps.Products, deps.Orders,
		logger.WithField("component", "analysis"))

	return deps, nil
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d.closeStorage == nil {
		return nil
	}
	return d.closeStorage()
}
