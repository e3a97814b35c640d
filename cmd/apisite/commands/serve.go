package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/apisite/internal/logfields"
	"git.home.luguber.info/inful/apisite/internal/metrics"
	"git.home.luguber.info/inful/apisite/internal/server"
	"git.home.luguber.info/inful/apisite/internal/site"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr    string `help:"Listen address; overrides server.addr"`
	NoWatch bool   `name:"no-watch" help:"Do not refresh when model or document files change"`
}

func (s *ServeCmd) Run(globals *Global, root *CLI) error {
	cfg, err := root.LoadConfig(globals)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	logger := globals.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	siteOpts := []site.Option{site.WithLogger(logger)}
	serverOpts := []server.Option{server.WithLogger(logger)}
	if cfg.Monitoring.Metrics.Enabled {
		reg := metrics.NewRegistry()
		siteOpts = append(siteOpts, site.WithRecorder(metrics.NewPrometheusRecorder(reg)))
		serverOpts = append(serverOpts, server.WithMetricsHandler(metrics.HTTPHandler(reg)))
	}

	st := site.New(cfg, nil, siteOpts...)
	if err := st.Init(ctx); err != nil {
		return err
	}

	if cfg.Model.Watch && !s.NoWatch {
		dirs := site.NewDirSource(cfg, logger).WatchDirs()
		go func() {
			if err := st.Watch(ctx, site.DefaultDebounce, dirs...); err != nil {
				logger.Warn("File watching disabled", logfields.Error(err))
			}
		}()
	}

	if every := cfg.RefreshEvery(); every > 0 {
		sch, err := site.NewScheduler(ctx, st, every)
		if err != nil {
			return err
		}
		sch.Start()
		defer func() {
			if err := sch.Stop(); err != nil {
				logger.Warn("Failed to stop refresh scheduler", logfields.Error(err))
			}
		}()
	}

	return server.New(cfg, st, serverOpts...).ListenAndServe(ctx)
}
