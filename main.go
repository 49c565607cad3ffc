// Package main is the entry point for the gitrelease CLI application.
// gitrelease summarizes a release of a local Git repository: it finds the
// last release tag, categorizes the commits since then, computes the next
// semantic version, and prints a release-notes document to stdout.
package main

import (
	"os"

	"github.com/MyCarrier-DevOps/goLibMyCarrier/logger"

	"github.com/MyCarrier-DevOps/gitrelease/cmd"
	"github.com/MyCarrier-DevOps/gitrelease/internal/adapters/git"
	logadapter "github.com/MyCarrier-DevOps/gitrelease/internal/adapters/logger"
	"github.com/MyCarrier-DevOps/gitrelease/internal/adapters/output"
	"github.com/MyCarrier-DevOps/gitrelease/internal/domain"
	"github.com/MyCarrier-DevOps/gitrelease/internal/infrastructure/config"
	"github.com/MyCarrier-DevOps/gitrelease/internal/usecases"
)

func main() {
	// Create a single shared logger instance for the application
	zapLog := logger.NewZapLoggerFromConfig()
	adapter := logadapter.NewZapAdapter(zapLog)

	// Wire up production dependencies
	deps := &cmd.Dependencies{
		LoggerFactory: func() cmd.Logger {
			return adapter
		},

		ConfigLoader: func() (*cmd.AppConfig, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return &cmd.AppConfig{
				LogLevel:   cfg.LogLevel,
				LogAppName: cfg.LogAppName,
			}, nil
		},

		GitRepoFactory: func(path string, _ cmd.Logger) (domain.GitRepository, error) {
			return git.NewGoGitRepository(path, adapter)
		},

		ComposerFactory: func(repo domain.GitRepository, _ cmd.Logger) domain.Composer {
			return usecases.NewNoteComposer(repo, adapter)
		},

		OutputWriterFactory: func() domain.OutputWriter {
			return output.NewWriter()
		},

		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	cmd.SetDefaultDependencies(deps)
	cmd.Execute()
}
