// Command chartimport loads a mileage chart file into the mileage_chart table,
// or exports the stored chart as csv.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/Temutjin2k/mileage-report/config"
	"github.com/Temutjin2k/mileage-report/internal/adapter/chart"
	repo "github.com/Temutjin2k/mileage-report/internal/adapter/postgres"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
	"github.com/Temutjin2k/mileage-report/pkg/postgres"
)

var (
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
	chartPath  = flag.String("chart", "", "chart file to import, csv or xlsx")
	exportPath = flag.String("export", "", "write the stored chart to this csv file instead of importing, - for stdout")
)

func main() {
	flag.Parse()

	ctx := wrap.WithAction(context.Background(), "chartimport")
	log := logger.InitLogger("chartimport", logger.LevelInfo)

	if *chartPath == "" && *exportPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	// short timeout for import operations
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log.Error(ctx, "failed to connect to database", err)
		os.Exit(1)
	}
	defer db.Close()

	charts := repo.NewChartRepo(db.Pool, "chartimport")

	if *exportPath != "" {
		err = exportChart(ctx, charts, *exportPath)
	} else {
		err = importChart(ctx, charts, *chartPath, log)
	}
	if err != nil {
		log.Error(wrap.ErrorCtx(ctx, err), "chart operation failed", err)
		db.Close()
		os.Exit(1)
	}
}

func importChart(ctx context.Context, charts *repo.ChartRepo, path string, log logger.Logger) error {
	c, err := chart.LoadFile(path)
	if err != nil {
		return err
	}

	if err := charts.Replace(ctx, c); err != nil {
		return err
	}

	log.Info(ctx, "chart imported", "path", path, "codes", c.Len())
	return nil
}

func exportChart(ctx context.Context, charts *repo.ChartRepo, path string) error {
	c, err := charts.Load(ctx)
	if err != nil {
		return err
	}

	if path == "-" {
		return chart.WriteCSV(os.Stdout, c)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := chart.WriteCSV(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
