package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"steamfeeds/internal/app"
	"steamfeeds/internal/config"
	"steamfeeds/internal/logging"
	"steamfeeds/internal/ports"
	"steamfeeds/internal/usecase"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

type flags struct {
	appIDs     []int
	urls       []string
	users      []string
	opml       bool
	verify     bool
	timeoutMs  int
	configPath string
	logLevel   string
}

// NewRootCommand builds the steamfeeds command. A non-nil fetcher replaces
// the HTTP client.
func NewRootCommand(fetcher ports.Fetcher) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "steamfeeds",
		Short: "Get RSS feeds for Steam games.",
		Long: "steamfeeds turns Steam AppIDs, store URLs and community profiles into\n" +
			"RSS feed URLs, optionally verifying each feed and printing them as OPML.",
		Example: "  steamfeeds --appid 400 --verify\n" +
			"  steamfeeds --url https://store.steampowered.com/app/620 --opml\n" +
			"  steamfeeds --user https://steamcommunity.com/id/bauke --verify --opml",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f, fetcher)
		},
	}

	fs := cmd.Flags()
	fs.IntSliceVarP(&f.appIDs, "appid", "a", nil, "A game's AppID, can be used multiple times.")
	fs.StringArrayVar(&f.urls, "url", nil, "A game's store URL, can be used multiple times.")
	fs.StringArrayVar(&f.users, "user", nil, "A person's steamcommunity.com ID or full URL, can be used multiple times.")
	fs.BoolVar(&f.opml, "opml", false, "Output the feeds as OPML.")
	fs.BoolVarP(&f.verify, "verify", "v", false, "Verify potential feeds by downloading them and checking if they return XML.")
	fs.IntVarP(&f.timeoutMs, "timeout", "t", int(config.DefaultDelay/time.Millisecond), "The time in milliseconds to sleep between HTTP requests.")
	fs.StringVar(&f.configPath, "config", "", "Path to a YAML or JSON5 config file.")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error.")

	return cmd
}

func run(cmd *cobra.Command, f *flags, fetcher ports.Fetcher) error {
	for _, appID := range f.appIDs {
		if appID < 0 {
			return fmt.Errorf("--appid must not be negative, got %d", appID)
		}
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("timeout") {
		if f.timeoutMs < 0 {
			return fmt.Errorf("--timeout must not be negative, got %d", f.timeoutMs)
		}
		cfg.Throttle.Delay = config.Duration(time.Duration(f.timeoutMs) * time.Millisecond)
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := logging.New(cfg.Logging.Level, cmd.ErrOrStderr())
	application := app.New(cfg, logger, app.Deps{
		Fetcher: fetcher,
		Out:     cmd.OutOrStdout(),
		Diag:    cmd.ErrOrStderr(),
	})

	return application.Run(cmd.Context(), app.Options{
		Inputs: usecase.Inputs{
			AppIDs: f.appIDs,
			URLs:   f.urls,
			Users:  f.users,
		},
		Verify: f.verify,
		OPML:   f.opml,
	})
}

// ExecuteContext runs the root command and exits non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := NewRootCommand(nil).ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
