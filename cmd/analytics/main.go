package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/ksomisetty/scm-analytics/internal/domain"
	"github.com/ksomisetty/scm-analytics/internal/engine"
	"github.com/ksomisetty/scm-analytics/internal/repository/postgres"
	"github.com/ksomisetty/scm-analytics/internal/service"
)

type contextKey string

const dbKey contextKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newOutFlag(defaultPath string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "out",
		Usage: "Output CSV path",
		Value: defaultPath,
	}
}

func paramFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "as-of", Usage: "Anchor date in YYYY-MM-DD format (default: latest order date)"},
		&cli.IntFlag{Name: "lookback-days", Value: 365, Usage: "Revenue and scoring window in days"},
		&cli.IntFlag{Name: "demand-lookback-days", Value: 90, Usage: "Demand statistics window in days"},
		&cli.IntFlag{Name: "fill-rate-lookback-days", Value: 90, Usage: "Fill-rate window in days"},
		&cli.Float64Flag{Name: "service-level-z", Value: 1.65, Usage: "Safety stock z-score"},
		&cli.Float64Flag{Name: "ordering-cost", Value: 50, Usage: "Fixed cost per order placement"},
		&cli.Float64Flag{Name: "holding-cost-rate", Value: 0.25, Usage: "Annual holding cost as a fraction of unit cost"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sqlx.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(c.Context, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sqlx.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func loadDataset(c *cli.Context) (*domain.Dataset, error) {
	db, ok := c.Context.Value(dbKey).(*sqlx.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	repo := postgres.NewAnalyticsRepositoryFromSQLX(db)
	return repo.LoadDataset(c.Context)
}

func parseParams(c *cli.Context) (engine.Params, error) {
	p := engine.DefaultParams()
	if raw := c.String("as-of"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return p, fmt.Errorf("invalid as-of date %q: %w", raw, err)
		}
		p.AsOf = t
	}
	p.LookbackDays = c.Int("lookback-days")
	p.DemandLookbackDays = c.Int("demand-lookback-days")
	p.FillRateLookbackDays = c.Int("fill-rate-lookback-days")
	p.ServiceLevelZ = c.Float64("service-level-z")
	p.OrderingCost = c.Float64("ordering-cost")
	p.HoldingCostRate = c.Float64("holding-cost-rate")
	return p, p.Validate()
}

func metricCommand(name, usage, defaultOut string, run func(c *cli.Context, ds *domain.Dataset, p engine.Params, out string) (int, error)) *cli.Command {
	return &cli.Command{
		Name:   name,
		Usage:  usage,
		Flags:  append([]cli.Flag{newDBURLFlag(), newOutFlag(defaultOut)}, paramFlags()...),
		Before: initDB,
		After:  closeDB,
		Action: func(c *cli.Context) error {
			p, err := parseParams(c)
			if err != nil {
				return err
			}
			ds, err := loadDataset(c)
			if err != nil {
				return err
			}

			start := time.Now()
			rows, err := run(c, ds, p, c.String("out"))
			if err != nil {
				return err
			}
			log.Printf("Wrote %d rows to %s in %v", rows, c.String("out"), time.Since(start))
			return nil
		},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "analytics",
		Usage: "Compute supply-chain analytics and export them as CSV",
		Commands: []*cli.Command{
			metricCommand("abc", "ABC revenue classification", "./abc_analysis.csv",
				func(c *cli.Context, ds *domain.Dataset, p engine.Params, out string) (int, error) {
					result, err := engine.ClassifyABC(ds.Lines, ds.Products, p)
					if err != nil {
						return 0, err
					}
					return len(result), writeABC(out, result)
				}),
			metricCommand("turnover", "Inventory turnover by warehouse and product", "./turnover.csv",
				func(c *cli.Context, ds *domain.Dataset, p engine.Params, out string) (int, error) {
					result, err := engine.ComputeTurnover(ds.Lines, ds.Snapshots, ds.Products, ds.Warehouses, p)
					if err != nil {
						return 0, err
					}
					return len(result), writeTurnover(out, result)
				}),
			metricCommand("reorder", "Reorder point recommendations", "./reorder_points.csv",
				func(c *cli.Context, ds *domain.Dataset, p engine.Params, out string) (int, error) {
					result, err := engine.RecommendReorderPoints(ds.Lines, ds.Deliveries, ds.Snapshots, ds.Products, ds.Warehouses, p)
					if err != nil {
						return 0, err
					}
					return len(result), writeReorder(out, result)
				}),
			metricCommand("eoq", "Economic order quantities", "./eoq.csv",
				func(c *cli.Context, ds *domain.Dataset, p engine.Params, out string) (int, error) {
					result, err := engine.ComputeEOQ(ds.Lines, ds.Products, p)
					if err != nil {
						return 0, err
					}
					return len(result), writeEOQ(out, result)
				}),
			metricCommand("suppliers", "Supplier reliability scorecards", "./supplier_scorecards.csv",
				func(c *cli.Context, ds *domain.Dataset, p engine.Params, out string) (int, error) {
					result, err := engine.ScoreSuppliers(ds.Deliveries, ds.PurchaseLines, ds.Suppliers, p)
					if err != nil {
						return 0, err
					}
					return len(result), writeSuppliers(out, result)
				}),
			metricCommand("lead-times", "Supplier lead-time variability", "./lead_times.csv",
				func(c *cli.Context, ds *domain.Dataset, p engine.Params, out string) (int, error) {
					result, err := engine.AnalyzeLeadTimes(ds.Deliveries, ds.Suppliers, p)
					if err != nil {
						return 0, err
					}
					return len(result), writeLeadTimes(out, result)
				}),
			metricCommand("stockouts", "Stockout impact ranking", "./stockouts.csv",
				func(c *cli.Context, ds *domain.Dataset, p engine.Params, out string) (int, error) {
					result, err := engine.AnalyzeStockouts(ds.Stockouts, ds.Products, ds.Warehouses, p)
					if err != nil {
						return 0, err
					}
					return len(result), writeStockouts(out, result)
				}),
			metricCommand("carrying-costs", "Carrying cost breakdown", "./carrying_costs.csv",
				func(c *cli.Context, ds *domain.Dataset, p engine.Params, out string) (int, error) {
					result, err := engine.CarryingCosts(ds.Snapshots, ds.Products, ds.Categories, ds.Warehouses, p)
					if err != nil {
						return 0, err
					}
					return len(result), writeCarryingCosts(out, result)
				}),
			metricCommand("inventory-status", "Per-item inventory health flags", "./inventory_status.csv",
				func(c *cli.Context, ds *domain.Dataset, p engine.Params, out string) (int, error) {
					result, err := engine.InventoryStatus(ds.Snapshots, ds.Lines, ds.Products, ds.Warehouses, p)
					if err != nil {
						return 0, err
					}
					return len(result), writeInventoryStatus(out, result)
				}),
			forecastCommand(),
			reportCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func forecastCommand() *cli.Command {
	flags := append([]cli.Flag{
		newDBURLFlag(),
		newOutFlag("./forecast.csv"),
		&cli.Int64Flag{Name: "product-id", Usage: "Product to forecast (0 forecasts every active product)"},
		&cli.IntFlag{Name: "window", Value: 7, Usage: "Moving-average window in days"},
		&cli.Float64Flag{Name: "alpha", Value: 0.3, Usage: "Exponential smoothing factor"},
		&cli.IntFlag{Name: "horizon-days", Value: 30, Usage: "Days to project forward"},
		&cli.IntFlag{Name: "holdout-days", Value: 14, Usage: "History held out for accuracy evaluation"},
	}, paramFlags()...)

	return &cli.Command{
		Name:   "forecast",
		Usage:  "Project daily demand and report backtest accuracy",
		Flags:  flags,
		Before: initDB,
		After:  closeDB,
		Action: func(c *cli.Context) error {
			p, err := parseParams(c)
			if err != nil {
				return err
			}
			ds, err := loadDataset(c)
			if err != nil {
				return err
			}

			productIDs := []int64{c.Int64("product-id")}
			if productIDs[0] <= 0 {
				productIDs = engine.ActiveProductIDs(ds.Lines, p)
			}

			window := c.Int("window")
			alpha := c.Float64("alpha")
			horizon := c.Int("horizon-days")
			holdout := c.Int("holdout-days")

			rows := 0
			points := make(map[int64][]domain.ForecastPoint, len(productIDs))
			for _, id := range productIDs {
				ma, err := engine.ForecastMovingAverage(ds.Lines, id, window, horizon, p)
				if err != nil {
					return err
				}
				es, err := engine.ForecastExponential(ds.Lines, id, alpha, horizon, p)
				if err != nil {
					return err
				}
				points[id] = append(ma, es...)
				rows += len(points[id])

				accuracy, err := engine.EvaluateForecasts(ds.Lines, id, window, alpha, holdout, p)
				if err != nil {
					return err
				}
				for _, a := range accuracy {
					if a.MAPEPct != nil {
						log.Printf("product %d %s: MAPE %.2f%% (%s)", id, a.Method, *a.MAPEPct, a.AccuracyGrade)
					}
				}
			}

			if err := writeForecast(c.String("out"), productIDs, points); err != nil {
				return err
			}
			log.Printf("Wrote %d forecast rows to %s", rows, c.String("out"))
			return nil
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Compute every metric and write one CSV per metric",
		Flags: append([]cli.Flag{
			newDBURLFlag(),
			&cli.StringFlag{Name: "out-dir", Value: "./reports", Usage: "Directory for the CSV files"},
		}, paramFlags()...),
		Before: initDB,
		After:  closeDB,
		Action: func(c *cli.Context) error {
			p, err := parseParams(c)
			if err != nil {
				return err
			}
			ds, err := loadDataset(c)
			if err != nil {
				return err
			}

			start := time.Now()
			report, err := service.ComputeReport(c.Context, ds, p)
			if err != nil {
				return err
			}

			if err := writeReport(c.String("out-dir"), report); err != nil {
				return err
			}
			log.Printf("Wrote full report to %s in %v", c.String("out-dir"), time.Since(start))
			return nil
		},
	}
}
