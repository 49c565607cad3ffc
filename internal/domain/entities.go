// Package domain defines the core business entities and interfaces for gitrelease.
package domain

import "time"

// ReleaseTag marks the last published release in the repository.
// It is selected among all tags matching the release pattern by the
// author timestamp of the commit the tag points to.
type ReleaseTag struct {
	// Name is the short tag name, e.g. "v1.2.3" or "subdir/v1.2.3".
	Name string

	// AuthorTime is the author timestamp of the tagged commit.
	AuthorTime time.Time

	// CommitID is the full SHA of the commit the tag resolves to.
	CommitID string
}

// Commit is a single commit in the range since the last release.
type Commit struct {
	// ID is the full commit SHA.
	ID string

	// Title is the first line of the commit message.
	Title string

	// Message is the full commit message.
	Message string
}

// CategoryTable groups commit descriptions by their conventional-commit
// category key ("feat", "fix", ...). Descriptions keep the order in which
// the commits were processed.
type CategoryTable map[string][]string

// ComposeInput contains the parameters for release-note composition.
// The repository path is provided separately when creating the GitRepository.
type ComposeInput struct {
	// Subdir scopes the tag pattern and the edited-file list to a folder.
	// Empty means the whole repository ("v*" tags).
	Subdir string

	// Submodule restricts commit inclusion to titles containing "(Submodule)".
	// Empty means all commits are included.
	Submodule string
}

// ComposeOutput contains the result of a successful composition.
type ComposeOutput struct {
	// Document is the complete release-notes document.
	// This is the primary output value written to stdout.
	Document string

	// NextVersion is the computed version for the new release.
	NextVersion string

	// PreviousTag is the name of the release tag the notes start from.
	PreviousTag string

	// CommitCount is the number of commits since the previous release.
	CommitCount int
}
