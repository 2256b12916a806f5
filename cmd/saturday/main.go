package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/Keto24/saturday-planner/internal/calendar"
	"github.com/Keto24/saturday-planner/internal/cli"
	"github.com/Keto24/saturday-planner/internal/config"
	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/db"
	"github.com/Keto24/saturday-planner/internal/httpapi"
	"github.com/Keto24/saturday-planner/internal/intelligence"
	"github.com/Keto24/saturday-planner/internal/llm"
	"github.com/Keto24/saturday-planner/internal/notify"
	"github.com/Keto24/saturday-planner/internal/places"
	"github.com/Keto24/saturday-planner/internal/repository"
	"github.com/Keto24/saturday-planner/internal/service"
	"github.com/Keto24/saturday-planner/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; deployed setups configure the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, logLevel := newLogger(cfg.Log)

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	prefs := repository.NewSQLitePreferenceRepo(database)
	runs := repository.NewSQLitePlanRunRepo(database)
	scoring := repository.NewSQLiteScoringConfigRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// External adapters degrade to log-only demo modes when keys are absent,
	// so a bare checkout still plans end to end.
	forecasts := weather.NewClient(weather.Config{
		APIKey:     cfg.Weather.APIKey,
		BaseURL:    cfg.Weather.BaseURL,
		TimeoutSec: cfg.Weather.TimeoutSec,
	}, logger)
	venues := places.NewSource(places.Config{
		APIKey:     cfg.Places.APIKey,
		BaseURL:    cfg.Places.BaseURL,
		TimeoutSec: cfg.Places.TimeoutSec,
	}, logger)
	events, err := calendar.NewWriter(context.Background(), calendar.Config{
		CredentialsFile: cfg.Calendar.CredentialsFile,
		TokenFile:       cfg.Calendar.TokenFile,
		CalendarID:      cfg.Calendar.CalendarID,
	}, logger)
	if err != nil {
		return fmt.Errorf("calendar writer: %w", err)
	}
	sms := notify.NewSender(notify.Config{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		From:       cfg.Twilio.From,
	}, logger)

	// LLM phrasing only when enabled; plans fall back to deterministic text.
	llmCfg := llm.LoadConfig()
	narrator := intelligence.NewNarrativeService(nil, false)
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		narrator = intelligence.NewNarrativeService(llm.NewChatClient(llmCfg, observer), true)
	}

	// Metrics live on their own registry, served by GET /metrics. Use-case
	// logs are debug-level detail; the HTTP middleware covers request logs.
	registry := prometheus.NewRegistry()
	observers := []service.UseCaseObserver{service.NewPrometheusUseCaseObserver(registry)}
	if logLevel <= zerolog.DebugLevel {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	plans := service.NewPlanService(
		prefs, scoring, forecasts, venues, narrator, events, sms, uow,
		service.PlanOptions{WeatherFallback: cfg.Planner.WeatherFallback},
		observers...,
	)
	feedback := service.NewFeedbackService(scoring, uow, observers...)

	defaults := contract.NewPlanRequest(cfg.Planner.Zip)
	defaults.RadiusMiles = cfg.Planner.RadiusMiles
	defaults.MaxPrice = cfg.Planner.MaxPrice
	defaults.Phone = cfg.Planner.Phone

	app := &cli.App{
		Plans:    plans,
		Feedback: feedback,
		Memory:   service.NewMemoryService(prefs, observers...),
		History:  service.NewHistoryService(runs),
		Defaults: &defaults,
	}

	// Detect interactive terminal for the progress and form surfaces.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.ServeHTTP = func(ctx context.Context, port string) error {
		if port == "" {
			port = cfg.Server.Port
		}
		srv := httpapi.NewServer(plans, feedback, httpapi.Options{
			Addr:           ":" + port,
			AllowedOrigins: splitOrigins(cfg.Server.CORSAllowedOrigins),
			Defaults:       &defaults,
			Metrics:        registry,
			Logger:         logger,
		})
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	}

	return cli.NewRootCmd(app).Execute()
}

// newLogger builds the process logger on stderr, keeping stdout free for
// command output. A terminal gets the console writer, pipes get JSON.
func newLogger(cfg config.LogConfig) (zerolog.Logger, zerolog.Level) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), level
}

func splitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
