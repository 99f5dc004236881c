package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/matchday-etl/internal/app"
	"github.com/riskibarqy/matchday-etl/internal/config"
	"github.com/riskibarqy/matchday-etl/internal/observability"
	"github.com/riskibarqy/matchday-etl/internal/platform/logging"
	"github.com/riskibarqy/matchday-etl/internal/usecase"
	"github.com/robfig/cron/v3"
)

const dateLayout = "20060102"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)

	code := run(cfg, logger, os.Args[1], os.Args[2:])
	_ = logger.Sync()
	os.Exit(code)
}

func run(cfg config.Config, logger *logging.Logger, command string, args []string) int {
	command = strings.ToLower(strings.TrimSpace(command))
	switch command {
	case "run", "fetch", "load", "schedule":
	default:
		printUsage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopProfiling(); err != nil {
			logger.Warn("stop pyroscope", "error", err)
		}
	}()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()

	switch command {
	case "run", "fetch":
		fs := flag.NewFlagSet(command, flag.ContinueOnError)
		rawDate := fs.String("date", "", "match day as YYYYMMDD (default: today, UTC)")
		if err := fs.Parse(args); err != nil {
			return 2
		}
		date, err := parseDate(*rawDate, time.Now())
		if err != nil {
			logger.Error("invalid date", "date", *rawDate, "error", err)
			return 2
		}

		runCtx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()

		var report usecase.RunReport
		if command == "fetch" {
			report, err = a.Pipeline.FetchOnly(runCtx, date)
		} else {
			report, err = a.Pipeline.Run(runCtx, date)
		}
		return finish(logger, report, err)
	case "load":
		fs := flag.NewFlagSet(command, flag.ContinueOnError)
		rawIDs := fs.String("ids", "", "comma-separated match ids")
		if err := fs.Parse(args); err != nil {
			return 2
		}

		runCtx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()

		report, err := a.Pipeline.LoadMatches(runCtx, parseIDs(*rawIDs))
		return finish(logger, report, err)
	default:
		return schedule(ctx, cfg, logger, a.Pipeline)
	}
}

func schedule(ctx context.Context, cfg config.Config, logger *logging.Logger, pipeline *usecase.PipelineService) int {
	runOnce := func(trigger string) {
		runCtx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()

		report, err := pipeline.Run(runCtx, time.Now().UTC())
		if err != nil {
			logger.Error("scheduled run failed", "trigger", trigger, "error", err)
			return
		}
		logger.Info("scheduled run finished", "trigger", trigger, "run_id", report.RunID, "processed", report.Processed)
	}

	c := cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(cfg.CronSchedule, func() { runOnce("cron") }); err != nil {
		logger.Error("invalid cron schedule", "schedule", cfg.CronSchedule, "error", err)
		return 2
	}

	if cfg.RunOnStart {
		go runOnce("start")
	}

	c.Start()
	logger.Info("scheduler started", "schedule", cfg.CronSchedule, "run_on_start", cfg.RunOnStart)

	<-ctx.Done()
	logger.Info("scheduler stopping")
	<-c.Stop().Done()
	return 0
}

func finish(logger *logging.Logger, report usecase.RunReport, err error) int {
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			logger.Error("invalid input", "error", err)
			return 2
		}
		logger.Error("run failed", "run_id", report.RunID, "error", err)
		return 1
	}

	encoded, encErr := jsoniter.MarshalIndent(report, "", "  ")
	if encErr != nil {
		logger.Error("encode report", "error", encErr)
		return 1
	}
	fmt.Println(string(encoded))

	if report.Failed > 0 || report.FetchFailed > 0 {
		return 1
	}
	return 0
}

// parseDate reads YYYYMMDD; an empty value means the UTC day of now.
func parseDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYYMMDD: %w", err)
	}
	return date, nil
}

func parseIDs(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <run|fetch|load|schedule> [flags]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s run -date 20250614\n", name)
	fmt.Fprintf(os.Stderr, "  %s fetch\n", name)
	fmt.Fprintf(os.Stderr, "  %s load -ids 401,402\n", name)
	fmt.Fprintf(os.Stderr, "  %s schedule\n", name)
}
