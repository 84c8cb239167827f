package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"feat/config"
	"feat/internal/repo"
)

// Version is the release version (set via -ldflags).
var Version = "dev"

var (
	cfgFile string
	rootDir string
	verbose bool

	cfg     *config.Config
	repoCtx repo.Context
	logger  *log.Logger
)

// skipConfig marks commands that run before a configuration exists.
const skipConfig = "skip-config"

var rootCmd = &cobra.Command{
	Use:   "feat",
	Short: "Feature surface discovery and documentation sync",
	Long: TitleStyle.Render("feat") + SubtitleStyle.Render(" - keep feature docs in step with the code") + `

feat groups source directories into features, extracts their public API
surface with per-language line scanners, and keeps a generated block in
each feature's markdown document up to date.

` + SubtitleStyle.Render("Examples:") + `
  feat init                 Write a starter .feat.toml
  feat list --counts        Show features with file and item counts
  feat scan alpha           Show the public surface of 'alpha'
  feat update alpha         Refresh (or create) the doc for 'alpha'
  feat sync --dry-run       Preview a refresh of every feature doc
  feat check --missing-docs Validate config, paths and docs`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd, verbose, "info")

		var err error
		if rootDir != "" {
			repoCtx, err = repo.New(rootDir)
		} else {
			var wd string
			wd, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			repoCtx, err = repo.Detect(wd)
			if err == nil && !repoCtx.Detected {
				logger.Warn("no repository marker found, using working directory", "root", repoCtx.Root)
			}
		}
		if err != nil {
			return err
		}

		if cmd.Annotations[skipConfig] == "true" {
			return nil
		}

		if cfgFile != "" {
			path, absErr := filepath.Abs(cfgFile)
			if absErr != nil {
				return fmt.Errorf("invalid config path: %w", absErr)
			}
			cfg, err = config.Load(path)
		} else {
			cfg, err = config.LoadFromDir(repoCtx.Root)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = newLogger(cmd, verbose, cfg.LogLevel)
		if cfg.Path != "" {
			logger.Debug("loaded config", "path", cfg.Path)
		}
		return nil
	},
}

// Execute runs the root command and exits with the status it reports.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/.feat.toml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "repository root (default is detected from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the stderr logger. --verbose wins over the configured
// level; an unknown level falls back to info.
func newLogger(cmd *cobra.Command, debug bool, level string) *log.Logger {
	l := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "feat"})
	if debug {
		l.SetLevel(log.DebugLevel)
		return l
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

func GetConfig() *config.Config {
	return cfg
}

func GetRepo() repo.Context {
	return repoCtx
}
