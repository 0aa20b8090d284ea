// Package cli provides the command-line interface for ccver.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/RyanGuild/ccver/internal/config"
	"github.com/RyanGuild/ccver/internal/engine"
)

var (
	// Version information set by main.
	versionInfo struct {
		Version string
		Commit  string
		Date    string
	}

	// Global flags
	cfgFile       string
	repoPath      string
	formatFlag    string
	tagPrefix     string
	defaultBranch string
	noPre         bool
	ciMode        bool
	jsonOutput    bool
	noColor       bool
	logLevel      string

	// Global config, loaded from file/env and overridden by flags.
	cfg *config.Config

	// Logger
	logger *log.Logger

	styles = struct {
		Success lipgloss.Style
		Error   lipgloss.Style
		Warning lipgloss.Style
	}{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
)

// SetVersionInfo sets the version information from main.
func SetVersionInfo(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ccver",
	Short: "Compute semantic versions from conventional commit history",
	Long: `ccver derives a semantic version for every commit reachable from HEAD
by reconstructing the commit graph from "git log", interpreting
Conventional Commits semantics, and applying branch-promotion rules on
top of it. No config file, tag, or commit is required to get a version:
an untagged repository starts at 0.0.0 and bumps from there.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "init" || cmd.Name() == "help" {
			return nil
		}
		return initConfig()
	},
	RunE: runVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a context for graceful shutdown.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: .ccver.yaml)")
	rootCmd.PersistentFlags().StringVar(&repoPath, "path", ".", "repository root")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "version format template (default from config)")
	rootCmd.PersistentFlags().StringVar(&tagPrefix, "prefix", "", "version tag prefix (default from config)")
	rootCmd.PersistentFlags().StringVar(&defaultBranch, "default-branch", "", "branch identity assigned to a root commit with no branch ref (default from config)")
	rootCmd.PersistentFlags().BoolVar(&noPre, "no-pre", false, "strip prerelease and build metadata from the printed version")
	rootCmd.PersistentFlags().BoolVar(&ciMode, "ci", false, "fail if the working tree is dirty before printing the version")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as a JSON object")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(peekCmd)
	rootCmd.AddCommand(changeLogCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(installCmd)
}

// initConfig reads the config file and environment, then layers the CLI
// flags on top (a flag always beats a config value) and configures the
// logger.
func initConfig() error {
	loader := config.NewLoader()
	if cfgFile != "" {
		loader.WithConfigPath(cfgFile)
	}

	var err error
	cfg, err = loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	applyFlags()
	configureLogger()

	logger.Debug("config loaded", "path", cfgFile, "repo", repoPath, "tag_prefix", cfg.Versioning.TagPrefix)

	return nil
}

func applyFlags() {
	if tagPrefix != "" {
		cfg.Versioning.TagPrefix = tagPrefix
	}
	if formatFlag != "" {
		cfg.Versioning.FormatTemplate = formatFlag
	}
	if defaultBranch != "" {
		cfg.Versioning.DefaultBranch = defaultBranch
	}
	if logLevel != "" {
		cfg.Output.LogLevel = logLevel
	}
	if noColor {
		cfg.Output.Color = false
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if jsonOutput {
		cfg.Output.JSON = true
	}
	if ciMode {
		cfg.Output.JSON = true
		cfg.Output.Color = false
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func configureLogger() {
	if cfg.Output.JSON {
		logger.SetFormatter(log.JSONFormatter)
	}
	switch cfg.Output.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	if cfg.Output.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// engineOptions translates the loaded config plus any flag overrides
// into engine.Options for the current invocation.
func engineOptions() engine.Options {
	return engine.Options{
		TagPrefix:      cfg.Versioning.TagPrefix,
		FormatTemplate: cfg.Versioning.FormatTemplate,
		DefaultBranch:  cfg.Versioning.DefaultBranch,
		PromotionChain: cfg.Versioning.PromotionChain,
		NoPre:          noPre,
	}
}

func printSuccess(msg string) {
	fmt.Fprintln(os.Stdout, styles.Success.Render("✓ "+msg))
}

func printError(msg string) {
	fmt.Fprintln(os.Stderr, styles.Error.Render("✗ "+msg))
}

func printWarning(msg string) {
	fmt.Fprintln(os.Stdout, styles.Warning.Render("⚠ "+msg))
}
