package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"steamfeeds/internal/config"
	"steamfeeds/internal/infrastructure/opml"
	"steamfeeds/internal/infrastructure/parser"
	"steamfeeds/internal/infrastructure/steamcommunity"
	"steamfeeds/internal/infrastructure/throttle"
	"steamfeeds/internal/logging"
	"steamfeeds/internal/output"
	"steamfeeds/internal/ports"
	"steamfeeds/internal/scanner"
	"steamfeeds/internal/usecase"
)

// Options describes one invocation.
type Options struct {
	Inputs usecase.Inputs
	Verify bool
	OPML   bool
}

// Deps overrides the process-level collaborators. Zero values select the
// real HTTP client, stdout and stderr.
type Deps struct {
	Fetcher ports.Fetcher
	Out     io.Writer
	Diag    io.Writer
}

// Application wires configs to use cases.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	fetcher ports.Fetcher
	out     io.Writer
	diag    io.Writer
}

// New builds a runnable application instance. The HTTP client is created
// once and shared by every component that fetches.
func New(cfg config.Config, baseLogger *slog.Logger, deps Deps) *Application {
	if deps.Diag == nil {
		deps.Diag = os.Stderr
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, deps.Diag)
	}

	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = steamcommunity.NewClient(steamcommunity.Options{
			UserAgent: cfg.HTTP.UserAgent,
			Timeout:   cfg.HTTP.Timeout.Std(),
		})
	}

	return &Application{
		cfg:     cfg,
		logger:  baseLogger,
		fetcher: throttle.Wrap(fetcher, throttle.NewPacer(cfg.Throttle.Delay.Std())),
		out:     deps.Out,
		diag:    deps.Diag,
	}
}

// Run performs a single discovery pass.
func (a *Application) Run(ctx context.Context, opts Options) error {
	logger := a.logger.With("run_id", uuid.NewString())

	registry := scanner.NewRegistry()
	registry.Register(parser.AppIDResolver{})
	registry.Register(parser.StoreURLResolver{})
	registry.Register(parser.NewUserResolver(
		parser.NewGamesScanner(a.fetcher, logger.With("component", "scanner.games")),
		a.diag,
		logger.With("component", "resolver.user"),
	))

	verifierLog := logger.With("component", "verifier")
	progress := func(done, total int) {
		verifierLog.Info(fmt.Sprintf("%d of %d processed", done, total))
	}

	var encoder func() ports.Encoder
	if opts.OPML {
		encoder = func() ports.Encoder { return opml.NewEncoder() }
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Collector: usecase.NewCollector(registry, logger.With("component", "collector")),
		Verifier:  usecase.NewVerifier(a.fetcher, a.diag, verifierLog, progress),
		Emitter:   output.NewEmitter(a.out, a.diag, encoder, logger.With("component", "output")),
		Logger:    logger.With("component", "pipeline"),
	})

	logger.Debug("starting run",
		"appids", len(opts.Inputs.AppIDs),
		"urls", len(opts.Inputs.URLs),
		"users", len(opts.Inputs.Users),
		"verify", opts.Verify,
		"opml", opts.OPML,
		"delay", a.cfg.Throttle.Delay.Std())

	return pipeline.Run(ctx, usecase.Request{Inputs: opts.Inputs, Verify: opts.Verify})
}
