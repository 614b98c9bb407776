package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/extract"
	"github.com/fwojciec/vidinfo/fs"
	"github.com/fwojciec/vidinfo/goquery"
	"github.com/fwojciec/vidinfo/htmltomarkdown"
	vidinfohttp "github.com/fwojciec/vidinfo/http"
	"github.com/fwojciec/vidinfo/readability"
	"github.com/fwojciec/vidinfo/regexp2"
	"github.com/fwojciec/vidinfo/rod"
	"github.com/fwojciec/vidinfo/site"
	vidinfoslog "github.com/fwojciec/vidinfo/slog"
	"github.com/fwojciec/vidinfo/sqlite"
	"github.com/fwojciec/vidinfo/trafilatura"
	"github.com/fwojciec/vidinfo/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Config file path. Set before calling Run().
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. A nil Fetcher is replaced by the
	// HTTP or browser fetcher.
	Fetcher vidinfo.Fetcher
	Archive vidinfo.ArchiveService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB == nil {
		return nil
	}
	err := m.DB.Close()
	m.DB, m.Archive = nil, nil
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("vidinfo"),
		kong.Description("Extract media metadata from video pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'vidinfo --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(m.ConfigPath)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set VIDINFO_CONFIG to use a different config file")
		return err
	}
	deps.Config = cfg

	dispatcher, err := extract.NewRegistry(site.All(site.Dependencies{
		Searcher:  regexp2.NewSearcher(),
		Converter: htmltomarkdown.NewConverter(),
		Metadata: []vidinfo.MetadataExtractor{
			goquery.NewMetadataExtractor(),
			trafilatura.NewMetadataExtractor(),
			readability.NewMetadataExtractor(),
		},
	})...)
	if err != nil {
		return fmt.Errorf("failed to register extractors: %w", err)
	}
	deps.Dispatcher = dispatcher

	if cmd == "history" || cmd == "forget" || (cmd == "extract" && cli.Extract.Archive) {
		if err := m.openArchive(stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Archive = m.Archive
	}

	if cmd == "extract" {
		settings := cli.Extract.effective(cfg)

		var logger *slog.Logger
		if cli.Extract.Verbose {
			logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			deps.Warner = vidinfoslog.NewWarner(logger)
			deps.Dispatcher = vidinfoslog.NewLoggingDispatcher(dispatcher, logger)
		} else {
			deps.Warner = zerolog.NewWarner(stderr)
		}

		fetcher := m.Fetcher
		if fetcher == nil {
			if fetcher, err = newFetcher(cli.Extract.Browser, settings, deps.Warner); err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
		}
		defer fetcher.Close()

		if settings.Rate > 0 {
			fetcher = extract.NewLimitedFetcher(fetcher, extract.NewDomainLimiter(settings.Rate))
		}
		fetcher = extract.NewRetryFetcher(fetcher, deps.Warner, retryDelays(settings.Retries))
		if logger != nil {
			fetcher = vidinfoslog.NewLoggingFetcher(fetcher, logger)
		}
		deps.Fetcher = fetcher

		if settings.InfoDir != "" {
			deps.Info = fs.NewWriter(settings.InfoDir)
		}
	}

	return kongCtx.Run(deps)
}

// openArchive opens the database unless an archive service was injected.
func (m *Main) openArchive(stderr io.Writer) error {
	if m.Archive != nil {
		return nil
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set VIDINFO_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	m.Archive = sqlite.NewArchiveService(m.DB)
	return nil
}

// newFetcher returns the page fetcher for the configured transport.
func newFetcher(browser bool, cfg Config, warner vidinfo.Warner) (vidinfo.Fetcher, error) {
	if browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cfg.Timeout), rod.WithWarner(warner))
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return vidinfohttp.NewFetcher(
		vidinfohttp.WithTimeout(cfg.Timeout),
		vidinfohttp.WithUserAgent(cfg.UserAgent),
	), nil
}
