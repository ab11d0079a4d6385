package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/alex-user-go/flightfinder/internal/config"
	"github.com/alex-user-go/flightfinder/internal/failure"
	"github.com/alex-user-go/flightfinder/internal/middleware"
	"github.com/alex-user-go/flightfinder/internal/obs"
	"github.com/alex-user-go/flightfinder/internal/providers"
	"github.com/alex-user-go/flightfinder/internal/search"
	"github.com/alex-user-go/flightfinder/internal/search/ratelimit"
	"github.com/alex-user-go/flightfinder/internal/sites"
)

// Version is set at build time with -ldflags "-X .../internal/app.Version=...".
var Version = "dev"

var errUsage = errors.New("invalid usage")

type flags struct {
	config   string
	apiKey   string
	endpoint string
	timeout  time.Duration
	delay    time.Duration
	format   string
	verbose  bool
}

type runner struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	now    func() time.Time
	flags  flags
}

// Run executes the CLI with args (without the program name) and returns the
// process exit code. Results, usage and failures are printed to stdout as
// JSON; logs go to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	r := &runner{
		stdout: stdout,
		stderr: stderr,
		getenv: getenv,
		now:    time.Now,
	}

	cmd := r.command()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if errors.Is(err, errUsage) {
		writeJSON(stdout, newUsage(r.now()))
		return 1
	}
	writeJSON(stdout, failure.From(err))
	return 1
}

func (r *runner) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flightfinder <origin> <destination> <date> [site]",
		Short: "Find the cheapest direct flight listing on booking sites",
		Long: `flightfinder searches Skyscanner, Google Flights or Booking.com through the
Brave web search API, extracts prices from the listings and reports the
cheapest one. Use the "compare" site to check all three.`,
		Args:          cobra.ArbitraryArgs,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          r.run,
	}

	f := cmd.Flags()
	f.StringVar(&r.flags.config, "config", "", "path to config file")
	f.StringVar(&r.flags.apiKey, "api-key", "", "search API key (overrides "+config.EnvAPIKey+")")
	f.StringVar(&r.flags.endpoint, "endpoint", "", "search API endpoint")
	f.DurationVar(&r.flags.timeout, "timeout", 0, "per-request timeout (e.g., 30s)")
	f.DurationVar(&r.flags.delay, "delay", 0, "delay between requests in compare mode (e.g., 500ms)")
	f.StringVar(&r.flags.format, "format", "", "output format: json or table")
	f.BoolVarP(&r.flags.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
	return cmd
}

func (r *runner) run(cmd *cobra.Command, args []string) error {
	if len(args) < 3 {
		return errUsage
	}

	selector := string(sites.Skyscanner)
	if len(args) > 3 {
		selector = args[3]
	}
	site, err := sites.Parse(selector)
	if err != nil {
		return err
	}

	params, err := search.NewParams(args[0], args[1], args[2], site, r.now())
	if err != nil {
		return err
	}

	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	apiKey, err := cfg.RequireAPIKey()
	if err != nil {
		return err
	}

	logger := r.newLogger()
	metrics := obs.NewMetrics(logger)
	defer metrics.LogSummary()

	provider := providers.NewBraveProvider(providers.BraveConfig{
		APIKey:    apiKey,
		Endpoint:  cfg.Endpoint,
		Timeout:   cfg.TimeoutDuration(),
		Count:     cfg.Count,
		Language:  cfg.Language,
		Transport: middleware.Logging(logger)(http.DefaultTransport),
	})
	searcher := search.NewSearcher(provider, metrics, logger)

	var result any
	switch params.Site {
	case sites.Compare:
		aggregator := search.NewAggregator(searcher, ratelimit.New(cfg.DelayDuration()), metrics, logger)
		result, err = aggregator.Compare(cmd.Context(), params)
	case sites.Skyscanner, sites.Google, sites.Booking:
		result, err = searcher.Search(cmd.Context(), params)
	default:
		err = failure.New(failure.InvalidSiteSelector, fmt.Sprintf("Invalid website: %s", params.Site), "")
	}
	if err != nil {
		logger.Debug("search failed", "site", params.Site, "kind", failure.KindOf(err), "error", err)
		return err
	}

	return render(r.stdout, cfg.Format, result)
}

// loadConfig merges the config file, environment and flags, in that order.
func (r *runner) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(r.flags.config)
	if err != nil {
		return nil, failure.Wrap(failure.InvalidConfig, err, err.Error(), "Fix or remove the config file")
	}
	cfg.ApplyEnv(r.getenv)

	f := cmd.Flags()
	if r.flags.apiKey != "" {
		cfg.APIKey = r.flags.apiKey
	}
	if r.flags.endpoint != "" {
		cfg.Endpoint = r.flags.endpoint
	}
	if f.Changed("timeout") {
		cfg.Timeout = r.flags.timeout.String()
	}
	if f.Changed("delay") {
		cfg.RequestDelay = r.flags.delay.String()
	}
	if r.flags.format != "" {
		cfg.Format = r.flags.format
	}

	if err := cfg.Validate(); err != nil {
		return nil, failure.Wrap(failure.InvalidConfig, err, fmt.Sprintf("Invalid configuration: %v", err), "Check the config file and flags")
	}
	return cfg, nil
}

func (r *runner) newLogger() *slog.Logger {
	level := slog.LevelWarn
	if r.flags.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(r.stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
