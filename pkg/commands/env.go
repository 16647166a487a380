package commands

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"tableflip.dev/riverline/pkg/app"
	"tableflip.dev/riverline/pkg/assistant"
	"tableflip.dev/riverline/pkg/metrics"
	"tableflip.dev/riverline/pkg/seed"
	"tableflip.dev/riverline/pkg/snake"
	"tableflip.dev/riverline/pkg/state"
	"tableflip.dev/riverline/pkg/store"
)

// env is everything a command needs once config has been read.
type env struct {
	cfg     *store.Config
	kv      store.KV
	app     *app.Service
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func (e *env) Close() error {
	if e == nil || e.kv == nil {
		return nil
	}
	return e.kv.Close()
}

// loadEnv reads config, opens the store and loads state. Callers must Close
// the result.
func loadEnv(ctx context.Context) (*env, error) {
	if globals.Config != "" {
		viper.SetConfigFile(globals.Config)
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if globals.Ephemeral {
		cfg.Driver = store.DriverMemory
	}

	level := viper.GetString("log.level")
	if globals.LogLevel != "" {
		level = globals.LogLevel
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(level)}))

	seeds, err := seed.LoadCatalog(viper.GetString("seed.catalog"))
	if err != nil {
		return nil, err
	}

	kv, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	st, err := state.Load(ctx, kv, seeds, logger)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	m := metrics.New()
	return &env{
		cfg:     cfg,
		kv:      kv,
		metrics: m,
		logger:  logger,
		app: &app.Service{
			State:       st,
			Confirm:     confirmer(),
			Logger:      logger,
			Metrics:     m,
			CascadeLogs: viper.GetBool("boats.cascade_logs"),
		},
	}, nil
}

// confirmer prompts on a terminal. Without one, destructive actions are
// declined unless --yes was given.
func confirmer() app.Confirmer {
	if globals.Yes {
		return app.AlwaysConfirm
	}
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return &snake.Confirm{}
	}
	return app.NeverConfirm
}

// newAssistant wires the Gemini provider from assistant.api_key, falling back
// to GEMINI_API_KEY and API_KEY. A missing key still yields an assistant that
// answers with the invalid key message.
func (e *env) newAssistant(ctx context.Context, location string) (*assistant.Assistant, error) {
	key := firstSet(viper.GetString("assistant.api_key"), os.Getenv("GEMINI_API_KEY"), os.Getenv("API_KEY"))

	var provider assistant.Provider
	if key != "" {
		g, err := assistant.NewGemini(ctx, key)
		if err != nil {
			return nil, err
		}
		provider = g
	} else {
		e.logger.Warn("assistant has no API key; set assistant.api_key or GEMINI_API_KEY")
	}

	a := assistant.New(provider, e.app)
	a.Logger = e.logger
	a.Metrics = e.metrics
	a.LocationTimeout = viper.GetDuration("assistant.location_timeout")

	if location == "" {
		location = viper.GetString("assistant.location")
	}
	if location != "" {
		p, err := assistant.ParseLatLng(location)
		if err != nil {
			return nil, err
		}
		a.Locator = assistant.StaticLocator{Point: p}
	}
	return a, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// withEnv runs fn against a freshly loaded env and closes it afterwards.
func withEnv(ctx context.Context, fn func(e *env) error) error {
	e, err := loadEnv(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()
	return fn(e)
}
