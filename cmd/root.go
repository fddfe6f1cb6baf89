package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/reelscout/config"
	"github.com/s0up4200/reelscout/favorites"
	"github.com/s0up4200/reelscout/filter"
	"github.com/s0up4200/reelscout/omdb"
	"github.com/s0up4200/reelscout/view"
)

var (
	cfgFile  string
	logLevel string

	cfg       *config.Config
	logger    zerolog.Logger
	client    *omdb.Client
	store     *favorites.Store
	compiler  *filter.ExprCompiler
	formatter = view.NewConsoleFormatter()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "reelscout",
	Short: "Search movies on OMDb and keep a list of favorites",
	Long: `reelscout searches the OMDb movie database by title, shows full details
for a single movie and lets you mark favorites. Use "serve" for the web UI
or "search" and "show" from the terminal.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
}

// initializeApp loads configuration and builds the shared dependencies
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger = setupLogger(cfg.Logging, os.Stderr)

	if cfg.OMDb.APIKey == "" {
		logger.Warn().Msg("No OMDb API key configured, requests will be rejected upstream (set OMDB_API_KEY)")
	}

	client = omdb.NewClient(cfg.OMDb.APIKey, logger,
		omdb.WithBaseURL(cfg.OMDb.BaseURL),
		omdb.WithTimeout(cfg.OMDb.Timeout),
	)

	// One store for the whole process; every view shares it.
	store = favorites.New()
	compiler = filter.NewCompiler(filter.WithCache(cfg.Filter.CacheSize))

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
