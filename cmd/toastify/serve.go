package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/toastify-dev/toastify/internal/config"
	"github.com/toastify-dev/toastify/internal/errors"
	"github.com/toastify-dev/toastify/pkg/assets"
	"github.com/toastify-dev/toastify/pkg/middleware"
	"github.com/toastify-dev/toastify/pkg/server"
)

type serveOptions struct {
	configPath string
	host       string
	port       int
	watch      bool
	logLevel   string
	logFormat  string
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the toast server",
		Long: `Start the HTTP and WebSocket server.

Configuration is read from --config, or from toastify.json or
toastify.yaml in the working directory. Without a file the built-in
defaults are used. With --watch, edits to the file update the default
toast options and the icon set without a restart.

Examples:
  toastify serve
  toastify serve --port=8080 --host=0.0.0.0
  toastify serve -c deploy/toastify.yaml --log-format=json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to toastify.json or toastify.yaml")
	cmd.Flags().StringVarP(&opts.host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", true, "Reload toast defaults and icons when the config file changes")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	return cmd
}

func loadConfig(opts serveOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load(".")
		if errors.HasCode(err, "T100") {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(ctx context.Context, opts serveOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	serverOpts, err := widgetOptions(ctx, cfg)
	if err != nil {
		return err
	}
	serverOpts = append(serverOpts, server.WithLogger(logger))

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := middleware.NewMetrics(
			middleware.WithRegistry(reg),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)
		serverOpts = append(serverOpts,
			server.WithMetrics(metrics, reg),
			server.WithMiddleware(metrics.Middleware()),
		)
	}
	if cfg.Tracing.Enabled {
		serverOpts = append(serverOpts, server.WithMiddleware(
			middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.TracerName)),
		))
	}

	srv := server.New(server.ConfigFrom(cfg), serverOpts...)

	if opts.watch && cfg.Path() != "" {
		watcher, err := config.NewWatcher(cfg.Path(), logger)
		if err != nil {
			return err
		}
		defer watcher.Close()
		watcher.OnReload(func(next *config.Config) {
			reloadWidgets(ctx, srv, next, logger)
		})
	}

	fmt.Fprintf(os.Stderr, "  toastify %s listening on http://%s\n", version, cfg.Addr())
	return srv.Run(ctx)
}

// widgetOptions loads the icon set and toast defaults named by cfg.
func widgetOptions(ctx context.Context, cfg *config.Config) ([]server.Option, error) {
	src, err := assets.FromConfig(cfg.Icons)
	if err != nil {
		return nil, err
	}
	icons, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("icons loaded", "component", "serve", "source", src.Describe())

	defaults, err := cfg.ToastDefaults()
	if err != nil {
		return nil, err
	}
	return []server.Option{server.WithIcons(icons), server.WithDefaults(defaults...)}, nil
}

func reloadWidgets(ctx context.Context, srv *server.Server, cfg *config.Config, logger *slog.Logger) {
	defaults, err := cfg.ToastDefaults()
	if err != nil {
		logger.Error("toast defaults rejected", "error", err)
		return
	}
	srv.SetDefaults(defaults)

	src, err := assets.FromConfig(cfg.Icons)
	if err != nil {
		logger.Error("icon source rejected", "error", err)
		return
	}
	icons, err := src.Load(ctx)
	if err != nil {
		logger.Error("icon reload failed", "source", src.Describe(), "error", err)
		return
	}
	srv.SetIcons(icons)
	logger.Info("toast defaults reloaded", "source", src.Describe())
}
