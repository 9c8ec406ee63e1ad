// Команда shopctl — сервисная утилита магазина: выгрузка и загрузка данных,
// сводная статистика, граф схожести клиентов и миграции PostgreSQL.
//
// Использование:
//
//	shopctl [флаги] export|import|export-csv|stats|graph|migrate|version
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcore/internal/app"
	"github.com/vladislavdragonenkov/shopcore/internal/interchange"
	"github.com/vladislavdragonenkov/shopcore/internal/storage/postgres"
	"github.com/vladislavdragonenkov/shopcore/internal/version"
)

const defaultTimeout = 30 * time.Second

// setupLogger настраивает формат и уровень логирования для утилиты.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

func main() {
	var (
		driver     string
		sqlitePath string
		dsn        string
		file       string
		kind       string
		top        int
		days       int
		direction  string
		steps      int
	)

	flag.StringVar(&driver, "driver", "", "storage driver: memory|sqlite|postgres (fallback: SHOP_STORAGE_DRIVER)")
	flag.StringVar(&sqlitePath, "sqlite-path", "", "path to the SQLite database file (fallback: SHOP_SQLITE_PATH)")
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: SHOP_POSTGRES_DSN)")
	flag.StringVar(&file, "file", "shop_data.json", "file for export/import")
	flag.StringVar(&kind, "kind", "clients", "entity kind for export-csv: clients|products|orders")
	flag.IntVar(&top, "top", 5, "number of clients for the stats top list")
	flag.IntVar(&days, "days", 30, "trailing window in days for the daily dynamics")
	flag.StringVar(&direction, "direction", "up", "migration direction: up|down|status")
	flag.IntVar(&steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")
	flag.Parse()

	setupLogger()
	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, warning := range warnings {
		log.Warn(warning)
	}
	if driver != "" {
		parsed, err := app.ParseStorageDriver(driver)
		if err != nil {
			fail("%v", err)
		}
		cfg.StorageDriver = parsed
	}
	if sqlitePath != "" {
		cfg.SQLitePath = sqlitePath
	}
	if dsn != "" {
		cfg.PostgresDSN = dsn
	}

	command := strings.ToLower(strings.TrimSpace(flag.Arg(0)))
	if command == "" {
		fail("command is required: export|import|export-csv|stats|graph|migrate|version")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	switch command {
	case "version":
		fmt.Println(version.String())
		return
	case "migrate":
		runMigrate(ctx, cfg, direction, steps)
		return
	}

	deps, err := app.NewDependencies(ctx, cfg, log.WithField("component", "shopctl"))
	if err != nil {
		fail("init dependencies: %v", err)
	}
	defer func() { _ = deps.Close() }()

	switch command {
	case "export":
		if err := deps.Codec.ExportFile(file); err != nil {
			fail("export failed: %v", err)
		}
		fmt.Printf("export ok: %s\n", file)
	case "import":
		if err := deps.Codec.ImportFile(file); err != nil {
			fail("import failed: %v", err)
		}
		fmt.Printf("import ok: %s\n", file)
	case "export-csv":
		if err := deps.Codec.ExportCSV(interchange.Kind(kind), os.Stdout); err != nil {
			fail("export-csv failed: %v", err)
		}
	case "stats":
		runStats(deps, top, days)
	case "graph":
		runGraph(deps)
	default:
		fail("unsupported command: %s (use export|import|export-csv|stats|graph|migrate|version)", command)
	}
}

// runStats печатает сводную статистику магазина.
func runStats(deps *app.Dependencies, top, days int) {
	stats, err := deps.Analyzer.SalesStatistics()
	if err != nil {
		fail("sales statistics failed: %v", err)
	}
	fmt.Printf("orders=%d revenue=%.2f avg_order=%.2f clients=%d avg_orders_per_client=%.2f\n",
		stats.TotalOrders, stats.TotalRevenue, stats.AvgOrderValue,
		stats.TotalClients, stats.AvgOrdersPerClient)

	topClients, err := deps.Analyzer.TopClients(top)
	if err != nil {
		fail("top clients failed: %v", err)
	}
	for _, c := range topClients {
		fmt.Printf("client %d %q: orders=%d spent=%.2f\n", c.ClientID, c.Name, c.OrdersCount, c.TotalSpent)
	}

	categories, err := deps.Analyzer.CategoryDistribution()
	if err != nil {
		fail("category distribution failed: %v", err)
	}
	for _, cat := range categories {
		fmt.Printf("category %q: products=%d revenue=%.2f\n", cat.Category, cat.Products, cat.TotalRevenue)
	}

	points, err := deps.Analyzer.DailyDynamics(days)
	if err != nil {
		fail("daily dynamics failed: %v", err)
	}
	for _, p := range points {
		fmt.Printf("day %s: orders=%d revenue=%.2f\n", p.Date.Format("2006-01-02"), p.Orders, p.Revenue)
	}
}

// runGraph печатает граф схожести клиентов.
func runGraph(deps *app.Dependencies) {
	graph, err := deps.Analyzer.ClientGraph()
	if err != nil {
		fail("client graph failed: %v", err)
	}
	for _, node := range graph.Nodes() {
		fmt.Printf("node %d %q degree=%d\n", node.ClientID, node.Name, graph.Degree(node.ClientID))
	}
	for _, edge := range graph.Edges() {
		fmt.Printf("edge %d-%d weight=%d\n", edge.A, edge.B, edge.Weight)
	}
}

// runMigrate применяет миграции PostgreSQL-хранилища.
func runMigrate(ctx context.Context, cfg app.Config, direction string, steps int) {
	if cfg.PostgresDSN == "" {
		fail("SHOP_POSTGRES_DSN (or -dsn) is required")
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "up":
		if err := store.MigrateUp(ctx, steps); err != nil {
			fail("migrate up failed: %v", err)
		}
		version, count, err := store.MigrationStatus(ctx)
		if err != nil {
			fail("migration status failed: %v", err)
		}
		fmt.Printf("migrate up ok: version=%d applied=%d\n", version, count)
	case "down":
		if steps <= 0 {
			steps = 1
		}
		if err := store.MigrateDown(ctx, steps); err != nil {
			fail("migrate down failed: %v", err)
		}
		version, count, err := store.MigrationStatus(ctx)
		if err != nil {
			fail("migration status failed: %v", err)
		}
		fmt.Printf("migrate down ok: version=%d applied=%d\n", version, count)
	case "status":
		version, count, err := store.MigrationStatus(ctx)
		if err != nil {
			fail("migration status failed: %v", err)
		}
		fmt.Printf("migration status: version=%d applied=%d\n", version, count)
	default:
		fail("unsupported direction: %s (use up|down|status)", direction)
	}
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
