package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "CandlePull/internal/domain/repository"
	"CandlePull/internal/handler/api"
	"CandlePull/internal/usecase"
	"CandlePull/pkg/config"
	xhttp "CandlePull/pkg/http"
	applogger "CandlePull/pkg/logger"
)

// Options carries the per-invocation command line selections.
type Options struct {
	Pairs     []string
	Frequency drepo.Frequency
	Plot      bool
}

// App runs the pipeline once over all pairs and, when charts are
// requested, serves them until interrupted.
type App struct {
	cfg      *config.Config
	pipeline *usecase.Pipeline
	results  *usecase.ResultSet
	opts     *Options
	l        *applogger.Logger
}

// New creates the application.
func New(cfg *config.Config, pipeline *usecase.Pipeline, results *usecase.ResultSet, opts *Options, l *applogger.Logger) *App {
	return &App{cfg: cfg, pipeline: pipeline, results: results, opts: opts, l: l}
}

// Run executes the pipeline and returns the number of pairs that failed
// end-to-end. The caller maps that onto the exit status.
func (a *App) Run() (int, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.l.Info("pipeline starting",
		applogger.Strings("pairs", a.opts.Pairs),
		applogger.String("freq", string(a.opts.Frequency)),
	)

	failed := a.pipeline.Run(ctx, a.opts.Pairs, a.opts.Frequency)
	a.pipeline.Close()

	a.l.Info("pipeline finished",
		applogger.Int("pairs", len(a.opts.Pairs)),
		applogger.Int("failed", failed),
	)

	if a.opts.Plot {
		if err := a.serveCharts(ctx); err != nil {
			return failed, err
		}
	}

	return failed, nil
}

// serveCharts blocks until the user interrupts the process, matching
// the dismiss-to-continue behavior of a chart window.
func (a *App) serveCharts(ctx context.Context) error {
	handler := api.NewChartsEchoHandler(a.l, a.results)
	srv := xhttp.NewServer(handler, a.l,
		xhttp.WithAddress("127.0.0.1", a.cfg.Charts.Port),
		xhttp.WithTimeouts(a.cfg.Charts.ReadTimeout, a.cfg.Charts.WriteTimeout, a.cfg.Charts.ShutdownTimeout),
	)
	if err := srv.Start(); err != nil {
		return err
	}
	a.l.Info("charts ready, press Ctrl+C to exit",
		applogger.Int("port", a.cfg.Charts.Port),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	return srv.Stop(ctx)
}
