// Package jobsapp реализует консольный клиент: собирает конфигурацию,
// хранилище сессии и API клиент и выполняет одну команду.
package jobsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"inclusive_jobs/internal/api"
	"inclusive_jobs/internal/config"
	"inclusive_jobs/internal/forms"
	"inclusive_jobs/internal/logging"
	"inclusive_jobs/internal/metrics"
	"inclusive_jobs/internal/session"
)

var ErrUsage = errors.New("usage")

// App хранит зависимости одного запуска.
type App struct {
	cfg      config.Config
	logger   *slog.Logger
	out      io.Writer
	sessions *session.Manager
	client   *api.Client
	auth     *api.AuthService
	metrics  *metrics.Collector
	closers  []func() error
}

// Run загружает конфигурацию, выполняет команду из args и освобождает ресурсы.
func Run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	app, err := New(ctx, cfg, logger, stdout)
	if err != nil {
		logger.Error("startup failed", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("shutdown failed", slog.String("error", err.Error()))
		}
	}()
	return app.Execute(ctx, args)
}

// New открывает настроенное хранилище сессии и создает приложение.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, stdout io.Writer) (*App, error) {
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	app := NewWithStore(cfg, store, logger, stdout)
	app.closers = append(app.closers, closeStore)
	return app, nil
}

// NewWithStore создает приложение поверх уже открытого хранилища.
func NewWithStore(cfg config.Config, store session.Store, logger *slog.Logger, stdout io.Writer) *App {
	if logger == nil {
		logger = slog.Default()
	}
	collector := metrics.NewCollector()
	sessions := session.NewManager(store, logger)
	client := api.NewClient(cfg.APIBaseURL, sessions,
		api.WithTimeout(cfg.APITimeout),
		api.WithLogger(logger),
		api.WithMetrics(collector),
	)
	return &App{
		cfg:      cfg,
		logger:   logger,
		out:      stdout,
		sessions: sessions,
		client:   client,
		auth:     api.NewAuthService(client, sessions),
		metrics:  collector,
	}
}

// Close пишет в лог счетчики вызовов и закрывает хранилище сессии.
func (a *App) Close() error {
	a.logger.Debug("api calls", slog.Any("metrics", a.metrics.Snapshot()))
	var errs []error
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Execute выполняет одну команду.
func (a *App) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}
	name, rest := args[0], args[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(a.out, "unknown command %q\n\n", name)
		a.usage()
		return ErrUsage
	}
	return cmd.run(ctx, a, rest)
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "usage: jobs <command> [flags] [args]")
	fmt.Fprintln(a.out)
	for _, name := range commandNames() {
		fmt.Fprintf(a.out, "  %-18s %s\n", name, commands[name].summary)
	}
}

// render печатает значение r как JSON с отступами или ошибку как предупреждение.
func render[T any](a *App, r api.Result[T]) error {
	value, err := r.Unwrap()
	if err != nil {
		fmt.Fprintln(a.out, "error: "+alertMessage(err))
		return err
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func alertMessage(err error) string {
	var apiErr *api.APIError
	var noResp *api.NoResponseError
	var invalid *forms.ValidationError
	switch {
	case errors.As(err, &invalid):
		return invalid.Error()
	case errors.As(err, &apiErr):
		if msg := apiErr.Message(); msg != "" {
			return fmt.Sprintf("%s (status %d)", msg, apiErr.StatusCode)
		}
		return fmt.Sprintf("request failed with status %d", apiErr.StatusCode)
	case api.IsTimeout(err):
		return "the server took too long to answer"
	case errors.As(err, &noResp):
		return fmt.Sprintf("no response from the server (%s %s)", noResp.Method, noResp.Path)
	case errors.Is(err, session.ErrNotAuthenticated):
		return "you are not logged in; run: jobs login"
	case errors.Is(err, session.ErrNoCandidateProfile):
		return "no candidate profile yet; run: jobs create-profile"
	case errors.Is(err, session.ErrNoCompanyProfile):
		return "no company profile yet; run: jobs create-profile"
	default:
		return err.Error()
	}
}
