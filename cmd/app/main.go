package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"RiskFill/internal/di"
	"RiskFill/pkg/config"
	applogger "RiskFill/pkg/logger"
	"RiskFill/pkg/util"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	mode := flag.String("mode", "backfill", "run mode: backfill or serve")
	start := flag.String("start", "", "first day to score (YYYY-MM-DD), default today minus window")
	end := flag.String("end", "", "last day to score (YYYY-MM-DD), default today")
	out := flag.String("out", "", "output file, overrides backfill.output")
	format := flag.String("format", "", "output format: json or xlsx, overrides backfill.format")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			log.Fatalf("%v: export it or add it to .env", err)
		}
		log.Fatalf("config load failed: %v", err)
	}
	if *out != "" {
		cfg.Backfill.Output = *out
	}
	if *format != "" {
		cfg.Backfill.Format = *format
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid flags: %v", err)
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}
	defer cleanup()
	l := app.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "serve":
		err = app.Serve(ctx)
	case "backfill":
		defStart, defEnd := app.DefaultWindow()
		from, perr := parseFlagDate(*start, defStart)
		if perr != nil {
			l.Fatal("invalid -start", applogger.Error(perr))
		}
		to, perr := parseFlagDate(*end, defEnd)
		if perr != nil {
			l.Fatal("invalid -end", applogger.Error(perr))
		}
		err = app.RunBackfill(ctx, from, to)
	default:
		l.Fatal("unknown mode", applogger.String("mode", *mode))
	}

	if err != nil {
		stop()
		cleanup()
		os.Exit(1)
	}
}

func parseFlagDate(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	return util.ParseDate(s)
}
