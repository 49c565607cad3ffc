// Package cmd provides the CLI commands for gitrelease.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/gitrelease/internal/domain"
)

// toolName is the name reported by the version flag.
const toolName = "gitrelease"

// Version is the tool version, set via ldflags during build.
var Version = "dev"

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// LogLevel is the log level setting.
	LogLevel string

	// LogAppName is the application name for logging.
	LogAppName string
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance.
	LoggerFactory func() Logger

	// ConfigLoader loads application configuration.
	ConfigLoader func() (*AppConfig, error)

	// GitRepoFactory creates a GitRepository for the given path.
	GitRepoFactory func(path string, log Logger) (domain.GitRepository, error)

	// ComposerFactory creates a Composer with the given dependencies.
	ComposerFactory func(repo domain.GitRepository, log Logger) domain.Composer

	// OutputWriterFactory creates an OutputWriter.
	OutputWriterFactory func() domain.OutputWriter

	// Stdout is the writer for standard output (the release-notes document).
	Stdout io.Writer

	// Stderr is the writer for standard error (for warnings/errors).
	Stderr io.Writer
}

// Command-line flags.
var (
	dir       string
	subdir    string
	submodule string
	verbose   bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for gitrelease.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   toolName,
		Short: "Generate a summary of a git release",
		Long: `gitrelease inspects a local git repository, collects the commits since the
last release tag, and prints a formatted release-notes document to stdout:
a computed next version, categorized changes, the full commit list, the
edited files, and a compare link.

When no release tag matching the pattern exists yet, nothing is printed and
the tool exits 0, so scripts can treat empty output as "no new release".

Examples:
  # Generate notes for the repository in the current directory
  gitrelease

  # Generate notes for a specific repository
  gitrelease --dir /path/to/repo

  # Restrict tags and edited files to a folder scope
  gitrelease --subdir spanner

  # Only include commits mentioning a submodule
  gitrelease --submodule spanner`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, deps)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("%s {{.Version}}\n", toolName))

	// Bad flags still show usage even though runtime errors don't.
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.Println(c.UsageString())
		return err
	})

	// Define flags
	rootCmd.Flags().StringVar(&dir, "dir", ".",
		"Path to the repository root")
	rootCmd.Flags().StringVar(&subdir, "subdir", "",
		"Restrict tags and edited files to a folder scope")
	rootCmd.Flags().StringVar(&submodule, "submodule", "",
		"Only include commits whose title contains \"(<name>)\"")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false,
		"Enable verbose/debug logging")

	return rootCmd
}

// runGenerate executes the release-note pipeline with injected dependencies.
func runGenerate(cmd *cobra.Command, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get stderr for warnings
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Set log level based on verbose flag (best-effort)
	if verbose {
		if err := os.Setenv("LOG_LEVEL", "debug"); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	// Initialize logger
	log := deps.LoggerFactory()

	log.Info(ctx, "starting gitrelease", map[string]interface{}{
		"dir":       dir,
		"subdir":    subdir,
		"submodule": submodule,
		"verbose":   verbose,
	})

	// Load configuration
	cfg, err := deps.ConfigLoader()
	if err != nil {
		log.Error(ctx, "failed to load configuration", err, nil)
		return fmt.Errorf("configuration error: %w", err)
	}

	log.Debug(ctx, "loaded configuration", map[string]interface{}{
		"log_level":    cfg.LogLevel,
		"log_app_name": cfg.LogAppName,
	})

	// Initialize Git repository adapter
	gitRepo, err := deps.GitRepoFactory(dir, log)
	if err != nil {
		log.Error(ctx, "failed to open git repository", err, map[string]interface{}{
			"dir": dir,
		})
		if errors.Is(err, domain.ErrRepositoryNotFound) {
			return fmt.Errorf("not a git repository: %s", dir)
		}
		return err
	}
	defer func() {
		if closeErr := gitRepo.Close(); closeErr != nil {
			log.Warn(ctx, "failed to close git repository", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	// Compose the release notes
	composer := deps.ComposerFactory(gitRepo, log)
	result, err := composer.Compose(ctx, domain.ComposeInput{
		Subdir:    subdir,
		Submodule: submodule,
	})
	if err != nil {
		// No prior release is not a failure: print nothing and exit 0 so
		// callers can script against empty output.
		if errors.Is(err, domain.ErrNoReleaseTag) {
			log.Info(ctx, "no release tag found; nothing to do", map[string]interface{}{
				"subdir": subdir,
			})
			return nil
		}
		log.Error(ctx, "failed to compose release notes", err, nil)
		if errors.Is(err, domain.ErrNoRemoteOrigin) {
			return fmt.Errorf("no 'origin' remote configured; cannot build links")
		}
		return err
	}

	// Write the whole document at once
	writer := deps.OutputWriterFactory()
	if err := writer.WriteDocument(result.Document); err != nil {
		log.Error(ctx, "failed to write output", err, nil)
		return fmt.Errorf("output error: %w", err)
	}

	log.Info(ctx, "release notes generated", map[string]interface{}{
		"previous_tag": result.PreviousTag,
		"next_version": result.NextVersion,
		"commits":      result.CommitCount,
	})

	return nil
}

// fatalStyle renders fatal errors on stderr; it degrades to plain text when
// the terminal has no color support.
var fatalStyle = color.New(color.FgRed, color.Bold)

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fatalStyle.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// writeWarningf writes a warning message to the given writer.
// This is a best-effort operation; errors are intentionally ignored
// because there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		return
	}
}
