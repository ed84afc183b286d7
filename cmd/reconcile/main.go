// Command reconcile prints the monthly register/calendar reconciliation for
// one branch without going through the HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"fets-live/backend/config"
	"fets-live/backend/internal/branch"
	"fets-live/backend/internal/repository"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/database"
	applogger "fets-live/backend/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file (default ./config/config.yaml)")
		branchName = flag.String("branch", "", "branch to reconcile (default branch.default)")
		month      = flag.String("month", "", "month as YYYY-MM (default current month)")
		format     = flag.String("format", "table", "output format: table | text")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// keep stdout for the report
	cfg.Log.Format = "console"
	if cfg.Log.Level == "info" {
		cfg.Log.Level = "warn"
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	name := *branchName
	if name == "" {
		name = cfg.Branch.Default
	}
	b, err := branch.Parse(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid branch %q: %v\n", name, err)
		os.Exit(2)
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := service.NewReconciliationService(repository.NewRepository(db), logger)
	report, err := svc.Report(ctx, branch.NewScope(b), *month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reconcile: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "text":
		fmt.Print(service.RenderReconciliationText(report))
	case "table":
		printReport(os.Stdout, report)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", *format)
		os.Exit(2)
	}

	if report.Summary.Excess+report.Summary.Shortage > 0 {
		os.Exit(3)
	}
}
