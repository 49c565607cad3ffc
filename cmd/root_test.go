// Package cmd provides CLI commands for gitrelease.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/gitrelease/internal/domain"
)

// Test mocks for dependency injection testing.

// mockLogger implements the Logger interface for testing.
type mockLogger struct{}

func (m *mockLogger) Info(_ context.Context, _ string, _ map[string]interface{})           {}
func (m *mockLogger) Debug(_ context.Context, _ string, _ map[string]interface{})          {}
func (m *mockLogger) Warn(_ context.Context, _ string, _ map[string]interface{})           {}
func (m *mockLogger) Error(_ context.Context, _ string, _ error, _ map[string]interface{}) {}

// mockGitRepo implements domain.GitRepository for testing.
type mockGitRepo struct {
	closeErr    error
	closeCalled bool
}

func (m *mockGitRepo) HeadCommit(_ context.Context) (*domain.Commit, error) { return nil, nil }
func (m *mockGitRepo) RemoteURL(_ context.Context) (string, error)          { return "", nil }
func (m *mockGitRepo) LastReleaseTag(_ context.Context, _ string) (*domain.ReleaseTag, error) {
	return nil, nil
}
func (m *mockGitRepo) CommitsInRange(_ context.Context, _, _ string) ([]domain.Commit, error) {
	return nil, nil
}
func (m *mockGitRepo) ChangedPaths(_ context.Context, _, _ string) ([]string, error) {
	return nil, nil
}
func (m *mockGitRepo) Close() error {
	m.closeCalled = true
	return m.closeErr
}

// mockComposer implements domain.Composer for testing.
type mockComposer struct {
	output *domain.ComposeOutput
	err    error
	input  domain.ComposeInput
}

func (m *mockComposer) Compose(_ context.Context, input domain.ComposeInput) (*domain.ComposeOutput, error) {
	m.input = input
	return m.output, m.err
}

// mockOutputWriter implements domain.OutputWriter for testing.
type mockOutputWriter struct {
	written  string
	writeErr error
}

func (m *mockOutputWriter) WriteDocument(doc string) error {
	m.written = doc
	return m.writeErr
}

// testDeps builds a Dependencies value with all factories wired to mocks.
func testDeps(repo *mockGitRepo, composer *mockComposer, writer *mockOutputWriter) (*Dependencies, *bytes.Buffer) {
	var stderr bytes.Buffer
	deps := &Dependencies{
		LoggerFactory: func() Logger { return &mockLogger{} },
		ConfigLoader: func() (*AppConfig, error) {
			return &AppConfig{LogLevel: "info", LogAppName: "gitrelease"}, nil
		},
		GitRepoFactory: func(_ string, _ Logger) (domain.GitRepository, error) {
			return repo, nil
		},
		ComposerFactory: func(_ domain.GitRepository, _ Logger) domain.Composer {
			return composer
		},
		OutputWriterFactory: func() domain.OutputWriter { return writer },
		Stderr:              &stderr,
	}
	return deps, &stderr
}

func TestNewRootCmd(t *testing.T) {
	// Set default deps so NewRootCmd() works
	SetDefaultDependencies(&Dependencies{})
	cmd := NewRootCmd()

	require.NotNil(t, cmd)
	assert.Equal(t, "gitrelease", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceUsage)

	// Check flags are registered
	dirFlag := cmd.Flags().Lookup("dir")
	require.NotNil(t, dirFlag)
	assert.Equal(t, ".", dirFlag.DefValue)

	subdirFlag := cmd.Flags().Lookup("subdir")
	require.NotNil(t, subdirFlag)
	assert.Equal(t, "", subdirFlag.DefValue)

	submoduleFlag := cmd.Flags().Lookup("submodule")
	require.NotNil(t, submoduleFlag)
	assert.Equal(t, "", submoduleFlag.DefValue)

	verboseFlag := cmd.Flags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "false", verboseFlag.DefValue)
}

func TestRootCmd_VersionFlag(t *testing.T) {
	SetDefaultDependencies(&Dependencies{})
	cmd := NewRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "gitrelease "+Version+"\n", out.String())
}

func TestRunGenerate_Success(t *testing.T) {
	repo := &mockGitRepo{}
	composer := &mockComposer{
		output: &domain.ComposeOutput{
			Document:    "### 1.3.0 / 2026-08-29\n",
			NextVersion: "1.3.0",
			PreviousTag: "v1.2.3",
			CommitCount: 4,
		},
	}
	writer := &mockOutputWriter{}
	deps, _ := testDeps(repo, composer, writer)

	cmd := NewRootCmdWithDeps(deps)
	cmd.SetArgs([]string{"--subdir", "spanner", "--submodule", "spanner"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "### 1.3.0 / 2026-08-29\n", writer.written)
	assert.Equal(t, "spanner", composer.input.Subdir)
	assert.Equal(t, "spanner", composer.input.Submodule)
	assert.True(t, repo.closeCalled)
}

func TestRunGenerate_NoReleaseTagIsSilentSuccess(t *testing.T) {
	repo := &mockGitRepo{}
	composer := &mockComposer{err: domain.ErrNoReleaseTag}
	writer := &mockOutputWriter{}
	deps, _ := testDeps(repo, composer, writer)

	cmd := NewRootCmdWithDeps(deps)
	cmd.SetArgs([]string{})

	// Exit 0 with no output at all.
	require.NoError(t, cmd.Execute())
	assert.Empty(t, writer.written)
	assert.True(t, repo.closeCalled)
}

func TestRunGenerate_ComposeError(t *testing.T) {
	repo := &mockGitRepo{}
	composer := &mockComposer{err: errors.New("object not found")}
	writer := &mockOutputWriter{}
	deps, _ := testDeps(repo, composer, writer)

	cmd := NewRootCmdWithDeps(deps)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "object not found")
	// Nothing reached the output on failure.
	assert.Empty(t, writer.written)
}

func TestRunGenerate_NotARepository(t *testing.T) {
	composer := &mockComposer{}
	writer := &mockOutputWriter{}
	deps, _ := testDeps(&mockGitRepo{}, composer, writer)
	deps.GitRepoFactory = func(_ string, _ Logger) (domain.GitRepository, error) {
		return nil, domain.ErrRepositoryNotFound
	}

	cmd := NewRootCmdWithDeps(deps)
	cmd.SetArgs([]string{"--dir", "/nonexistent"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")
}

func TestRunGenerate_ConfigError(t *testing.T) {
	composer := &mockComposer{}
	writer := &mockOutputWriter{}
	deps, _ := testDeps(&mockGitRepo{}, composer, writer)
	deps.ConfigLoader = func() (*AppConfig, error) {
		return nil, errors.New("bad config")
	}

	cmd := NewRootCmdWithDeps(deps)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration error")
}

func TestRunGenerate_WriteError(t *testing.T) {
	repo := &mockGitRepo{}
	composer := &mockComposer{output: &domain.ComposeOutput{Document: "doc"}}
	writer := &mockOutputWriter{writeErr: errors.New("broken pipe")}
	deps, _ := testDeps(repo, composer, writer)

	cmd := NewRootCmdWithDeps(deps)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "output error")
}

func TestRunGenerate_NilDependencies(t *testing.T) {
	cmd := NewRootCmdWithDeps(nil)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependencies not configured")
}

func TestRootCmd_UnknownFlag(t *testing.T) {
	deps, _ := testDeps(&mockGitRepo{}, &mockComposer{}, &mockOutputWriter{})
	cmd := NewRootCmdWithDeps(deps)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--bogus"})

	err := cmd.Execute()

	require.Error(t, err)
	// Bad flags show usage text.
	assert.Contains(t, out.String(), "Usage:")
}
