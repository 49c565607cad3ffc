// Package domain defines the core business entities and interfaces for gitrelease.
// This package contains no external dependencies and represents the innermost layer
// of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
)

// Domain errors for git operations and release-note composition.
var (
	// ErrRepositoryNotFound indicates the specified path is not a valid Git repository.
	ErrRepositoryNotFound = errors.New("git repository not found at specified path")

	// ErrNoRemoteOrigin indicates no 'origin' remote is configured in the repository.
	ErrNoRemoteOrigin = errors.New("no 'origin' remote configured; cannot determine repository URL")

	// ErrInvalidRemoteURL indicates the remote URL is neither HTTPS nor a
	// recognizable SSH form.
	ErrInvalidRemoteURL = errors.New("could not normalize remote URL")

	// ErrInvalidVersion indicates a tag name does not carry a parseable
	// semantic version.
	ErrInvalidVersion = errors.New("invalid semantic version")

	// ErrNoReleaseTag indicates no tag matching the release pattern resolves
	// to a commit. This is an expected state for repositories without a prior
	// release, not a backend failure.
	ErrNoReleaseTag = errors.New("no release tag found")
)

// GitRepository provides read access to a local repository's commits, tags,
// trees and origin remote. All failures reading objects are unrecoverable for
// the caller; absence of a release tag is reported as (nil, nil).
type GitRepository interface {
	// HeadCommit returns the commit HEAD currently points to.
	HeadCommit(ctx context.Context) (*Commit, error)

	// RemoteURL returns the normalized HTTPS URL of the 'origin' remote.
	// Returns ErrNoRemoteOrigin when the remote is missing and
	// ErrInvalidRemoteURL when its URL cannot be normalized.
	RemoteURL(ctx context.Context) (string, error)

	// LastReleaseTag finds the most recent release tag, by the author time of
	// the tagged commit. Tags match "v*" when folder is empty, "{folder}/*"
	// otherwise. Returns (nil, nil) when no matching tag resolves to a commit.
	LastReleaseTag(ctx context.Context, folder string) (*ReleaseTag, error)

	// CommitsInRange returns all commits reachable from startID but not from
	// endID, newest first. startID is included, endID excluded. An empty
	// result is valid.
	CommitsInRange(ctx context.Context, startID, endID string) ([]Commit, error)

	// ChangedPaths diffs the trees of two commits and returns the changed
	// file paths, old side preferred.
	ChangedPaths(ctx context.Context, oldID, newID string) ([]string, error)

	// Close releases any resources held by the repository.
	Close() error
}

// Composer builds the release-notes document for the current repository state.
type Composer interface {
	// Compose gathers tag, commits, diff and remote URL and renders the full
	// document. Returns ErrNoReleaseTag when there is no prior release.
	Compose(ctx context.Context, input ComposeInput) (*ComposeOutput, error)
}

// OutputWriter writes the composed document to an output destination.
type OutputWriter interface {
	// WriteDocument writes the complete document in one call. Nothing is
	// written before composition has fully succeeded.
	WriteDocument(doc string) error
}
