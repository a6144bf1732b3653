package config

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
)

const HelpMessage = `
Mileage report server

Usage:
  mileage -mode <report-service|archive-service> [-config-path config.yaml]
  mileage -help

Modes:
  report-service   accepts timesheet exports and returns mileage reports (POST /reports, POST /entries, GET /ws/reports)
  archive-service  stores generated reports from RabbitMQ and serves their history (GET /reports, GET /reports/{report_id})

Options:
  -mode         service mode
  -config-path  path to the config yaml file (default config.yaml); environment variables win over the file
  -help         show this message
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig prints the effective configuration with secrets masked.
func PrintConfig(cfg *Config) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "mode\t%s\n", cfg.Mode)
	fmt.Fprintf(w, "http port\t%s\n", cfg.Port())
	fmt.Fprintf(w, "max body bytes\t%d\n", cfg.Server.MaxBodyBytes)
	fmt.Fprintf(w, "chart source\t%s\n", cfg.Chart.Source)
	fmt.Fprintf(w, "chart path\t%s\n", cfg.Chart.Path)
	fmt.Fprintf(w, "branches file\t%s\n", orDefault(cfg.Chart.BranchesFile, "built-in"))
	fmt.Fprintf(w, "database\t%s@%s:%s/%s\n", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	fmt.Fprintf(w, "rabbitmq\t%s@%s:%s\n", cfg.RabbitMQ.User, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	fmt.Fprintf(w, "redis\t%t %s db=%d ttl=%s\n", cfg.Redis.Enabled, cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.TTL)
	fmt.Fprintf(w, "jwt secret\t%s\n", mask(cfg.Auth.JWTSecret))
	fmt.Fprintf(w, "log level\t%s\n", cfg.Log.Level)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
