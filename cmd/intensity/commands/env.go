package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/intensity/internal/session"
	"github.com/Sumatoshi-tech/intensity/pkg/config"
	"github.com/Sumatoshi-tech/intensity/pkg/observability"
	"github.com/Sumatoshi-tech/intensity/pkg/version"
)

const (
	metricsPath              = "/metrics"
	metricsReadHeaderTimeout = 5 * time.Second
)

// environment is everything a command needs once config and observability are up.
type environment struct {
	cfg       *config.Config
	providers observability.Providers
	logger    *slog.Logger
	metrics   *observability.StoreMetrics
	server    *metricsServer
}

// setup loads configuration, applies flag overrides and starts observability.
// The caller must invoke close.
func setup(cmd *cobra.Command, opts *globalOptions, mode observability.AppMode, initObs InitFunc) (*environment, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if opts.noColor {
		cfg.Output.Color = false
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Observability.Environment
	obsCfg.Mode = mode
	obsCfg.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Observability.OTLPInsecure
	obsCfg.Prometheus = cfg.Observability.MetricsAddr != ""
	obsCfg.LogLevel = cfg.Logging.SlogLevel()
	obsCfg.LogJSON = cfg.Logging.JSON()

	switch {
	case opts.verbose:
		obsCfg.LogLevel = slog.LevelDebug
	case opts.quiet:
		obsCfg.LogLevel = slog.LevelError
	}

	providers, err := initObs(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	env := &environment{
		cfg:       cfg,
		providers: providers,
		logger:    providers.Logger,
	}

	if env.logger == nil {
		env.logger = observability.NewLogger(cmd.ErrOrStderr(), obsCfg)
	}

	if providers.Meter != nil {
		env.metrics, err = observability.NewStoreMetrics(providers.Meter)
		if err != nil {
			return nil, errors.Join(err, env.close(cmd.Context()))
		}
	}

	if providers.MetricsHandler != nil {
		env.server, err = startMetricsServer(cfg.Observability.MetricsAddr, providers.MetricsHandler, env.logger)
		if err != nil {
			return nil, errors.Join(err, env.close(cmd.Context()))
		}
	}

	return env, nil
}

// sessionOptions wires the environment's logger, tracer and metrics into a session.
func (e *environment) sessionOptions() []session.Option {
	opts := []session.Option{session.WithLogger(e.logger), session.WithMetrics(e.metrics)}

	if e.providers.Tracer != nil {
		opts = append(opts, session.WithTracer(e.providers.Tracer))
	}

	return opts
}

func (e *environment) close(ctx context.Context) error {
	var errs []error

	if e.server != nil {
		errs = append(errs, e.server.shutdown(ctx))
	}

	if e.providers.Shutdown != nil {
		errs = append(errs, e.providers.Shutdown(ctx))
	}

	return errors.Join(errs...)
}

// metricsServer exposes the Prometheus scrape handler while a command runs.
type metricsServer struct {
	srv  *http.Server
	addr string
}

func startMetricsServer(addr string, handler http.Handler, logger *slog.Logger) (*metricsServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle(metricsPath, handler)

	ms := &metricsServer{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: metricsReadHeaderTimeout,
		},
		addr: listener.Addr().String(),
	}

	go func() {
		serveErr := ms.srv.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", serveErr)
		}
	}()

	logger.Info("serving metrics", "addr", "http://"+ms.addr+metricsPath)

	return ms, nil
}

func (ms *metricsServer) shutdown(ctx context.Context) error {
	err := ms.srv.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}

	return nil
}
