// Command mileagecli converts a timesheet export into a mileage report
// without running any service.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Temutjin2k/mileage-report/config"
	"github.com/Temutjin2k/mileage-report/internal/adapter/chart"
	"github.com/Temutjin2k/mileage-report/internal/adapter/export"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/internal/service/auth"
	"github.com/Temutjin2k/mileage-report/internal/service/mileage"
	"github.com/Temutjin2k/mileage-report/internal/service/report"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
)

var (
	chartPath    = flag.String("chart", "mileage_chart.csv", "mileage chart, csv or xlsx")
	branchesPath = flag.String("branches", "", "branch directory yaml; empty uses the built-in one")
	inPath       = flag.String("in", "-", "timesheet export text file, - for stdin")
	outPath      = flag.String("out", "", "output file; empty writes final-mileage-<date>.<format> (or raw-entries-...) in the current directory, - for stdout")
	formatFlag   = flag.String("format", "", "json, xlsx, csv or pdf (default xlsx, json with -raw)")
	rawFlag      = flag.Bool("raw", false, "write the raw check-in/out entries instead of trips")
	logLevel     = flag.String("log-level", logger.LevelWarn, "DEBUG, INFO, WARN or ERROR")

	issueToken = flag.String("issue-token", "", "print an ADMIN access token for the given subject and exit")
	configPath = flag.String("config-path", "config.yaml", "config used by -issue-token for the jwt secret and ttl")
)

func main() {
	flag.Parse()

	ctx := wrap.WithAction(context.Background(), "mileagecli")
	log := logger.InitLogger("mileagecli", *logLevel)

	if *issueToken != "" {
		if err := printToken(*issueToken); err != nil {
			log.Error(ctx, "failed to issue token", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, log); err != nil {
		log.Error(wrap.ErrorCtx(ctx, err), "conversion failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log logger.Logger) error {
	defaultFormat, allowed := types.FormatXLSX, export.TripFormats
	if *rawFlag {
		defaultFormat, allowed = types.FormatJSON, export.EntryFormats
	}
	format, err := export.ParseFormat(*formatFlag, defaultFormat, allowed)
	if err != nil {
		return err
	}

	text, err := readInput(*inPath)
	if err != nil {
		return err
	}

	// reference data is only needed to derive trips
	var deriver report.Deriver
	if !*rawFlag {
		distances, err := chart.LoadFile(*chartPath)
		if err != nil {
			return err
		}
		directory, err := chart.LoadBranches(*branchesPath)
		if err != nil {
			return err
		}
		deriver = mileage.NewDeriver(directory, distances)
	}

	service := report.NewService("mileagecli", deriver, nil, nil, nil, log)

	if *rawFlag {
		entries, err := service.Entries(ctx, text)
		if err != nil {
			return err
		}
		name, err := writeOutput(*outPath, export.EntriesPrefix, format, func(w io.Writer) error {
			return export.WriteEntries(w, format, entries)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d entries written to %s\n", len(entries), name)
		return nil
	}

	r, err := service.Generate(ctx, text)
	if err != nil {
		return err
	}
	name, err := writeOutput(*outPath, export.ReportPrefix, format, func(w io.Writer) error {
		return export.WriteTrips(w, format, r.Trips)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d trips, %.2f total, written to %s\n", len(r.Trips), r.TotalDistance, name)
	return nil
}

func readInput(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// writeOutput renders into path. An empty path picks the dated default name,
// "-" means stdout.
func writeOutput(path, prefix string, format types.ExportFormat, render func(io.Writer) error) (string, error) {
	if path == "-" {
		w := bufio.NewWriter(os.Stdout)
		if err := render(w); err != nil {
			return "", err
		}
		return "stdout", w.Flush()
	}
	if path == "" {
		path = export.Filename(prefix, format, time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := render(w); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("write output: %w", err)
	}
	return path, f.Close()
}

func printToken(subject string) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	token, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL).Issue(subject, types.RoleAdmin)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
