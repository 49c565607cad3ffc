// Package git provides adapters for interacting with local Git repositories.
// This package implements the domain.GitRepository interface using go-git/v5.
package git

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/MyCarrier-DevOps/gitrelease/internal/domain"
)

// Logger defines the logging interface for the git adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// GoGitRepository implements domain.GitRepository using go-git/v5.
// It provides the tag, commit-range, diff and remote reads the release-note
// pipeline issues against a local repository.
type GoGitRepository struct {
	repo   *git.Repository
	path   string
	logger Logger
}

// NewGoGitRepository creates a new GoGitRepository for the given path.
// The path can be either a working directory or a bare repository.
// Returns domain.ErrRepositoryNotFound if the path is not a valid Git repository.
func NewGoGitRepository(path string, log Logger) (*GoGitRepository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, path)
	}

	return &GoGitRepository{
		repo:   repo,
		path:   path,
		logger: log,
	}, nil
}

// HeadCommit returns the commit HEAD currently points to.
// A detached HEAD is fine for composing notes; it only loses the branch name
// in the debug log.
func (r *GoGitRepository) HeadCommit(ctx context.Context) (*domain.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get commit object for HEAD: %w", err)
	}

	if head.Name().IsBranch() {
		r.logger.Debug(ctx, "resolved HEAD", map[string]interface{}{
			"head_sha": head.Hash().String(),
			"branch":   head.Name().Short(),
		})
	} else {
		r.logger.Warn(ctx, "HEAD is detached", map[string]interface{}{
			"head_sha": head.Hash().String(),
			"path":     r.path,
		})
	}

	return toDomainCommit(commit), nil
}

// RemoteURL returns the normalized HTTPS URL of the 'origin' remote.
func (r *GoGitRepository) RemoteURL(ctx context.Context) (string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("%w: failed to get origin remote: %w", domain.ErrNoRemoteOrigin, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: origin remote has no URLs configured", domain.ErrNoRemoteOrigin)
	}

	normalized, err := normalizeRemoteURL(urls[0])
	if err != nil {
		return "", err
	}

	r.logger.Debug(ctx, "resolved remote URL", map[string]interface{}{
		"raw":        urls[0],
		"normalized": normalized,
	})

	return normalized, nil
}

// LastReleaseTag scans all tags matching the release pattern and returns the
// one whose commit has the greatest author timestamp. Ties keep the tag seen
// first. Tags that do not resolve to a commit (blobs, trees) are skipped.
// Returns (nil, nil) when nothing matches.
func (r *GoGitRepository) LastReleaseTag(ctx context.Context, folder string) (*domain.ReleaseTag, error) {
	pattern := "v*"
	if folder != "" {
		pattern = folder + "/*"
	}

	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate tags: %w", err)
	}

	var last *domain.ReleaseTag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		name := ref.Name().Short()
		matched, err := path.Match(pattern, name)
		if err != nil {
			return fmt.Errorf("bad tag pattern %q: %w", pattern, err)
		}
		if !matched {
			return nil
		}

		commit := r.peelToCommit(ref)
		if commit == nil {
			r.logger.Debug(ctx, "tag does not resolve to a commit; skipping", map[string]interface{}{
				"tag": name,
			})
			return nil
		}

		when := commit.Author.When
		if last == nil || when.After(last.AuthorTime) {
			last = &domain.ReleaseTag{
				Name:       name,
				AuthorTime: when,
				CommitID:   commit.Hash.String(),
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tags: %w", err)
	}

	if last != nil {
		r.logger.Debug(ctx, "resolved last release tag", map[string]interface{}{
			"tag":         last.Name,
			"tag_commit":  last.CommitID,
			"author_time": last.AuthorTime,
		})
	}

	return last, nil
}

// peelToCommit resolves a tag reference to the commit it ultimately points
// to, following annotated-tag indirection. Returns nil for refs that do not
// point at a commit.
func (r *GoGitRepository) peelToCommit(ref *plumbing.Reference) *object.Commit {
	if tag, err := r.repo.TagObject(ref.Hash()); err == nil {
		commit, err := tag.Commit()
		if err != nil {
			return nil
		}
		return commit
	}

	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil
	}
	return commit
}

// CommitsInRange returns all commits reachable from startID but not from
// endID, newest first by commit time. The end commit and its ancestors are
// hidden; the start commit is the visible head of the walk.
func (r *GoGitRepository) CommitsInRange(ctx context.Context, startID, endID string) ([]domain.Commit, error) {
	start, err := r.repo.CommitObject(plumbing.NewHash(startID))
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", startID, err)
	}

	end, err := r.repo.CommitObject(plumbing.NewHash(endID))
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", endID, err)
	}

	// Mark the end commit and its whole ancestry as excluded, then walk from
	// the start commit over whatever remains.
	excluded := map[plumbing.Hash]bool{}
	err = object.NewCommitPreorderIter(end, nil, nil).ForEach(func(c *object.Commit) error {
		excluded[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk excluded ancestry: %w", err)
	}

	var commits []domain.Commit
	err = object.NewCommitIterCTime(start, excluded, nil).ForEach(func(c *object.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		commits = append(commits, *toDomainCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk commit range: %w", err)
	}

	r.logger.Debug(ctx, "walked commit range", map[string]interface{}{
		"start":         startID,
		"end":           endID,
		"commits_found": len(commits),
	})

	return commits, nil
}

// ChangedPaths diffs the trees of two commits and returns the changed file
// paths. The old-side path is used; additions fall back to the new side.
func (r *GoGitRepository) ChangedPaths(ctx context.Context, oldID, newID string) ([]string, error) {
	oldTree, err := r.treeOf(oldID)
	if err != nil {
		return nil, err
	}
	newTree, err := r.treeOf(newID)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, oldTree, newTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to diff trees: %w", err)
	}

	paths := make([]string, 0, len(changes))
	for _, change := range changes {
		name := change.From.Name
		if name == "" {
			name = change.To.Name
		}
		paths = append(paths, name)
	}

	return paths, nil
}

// treeOf returns the tree of the commit with the given id.
func (r *GoGitRepository) treeOf(id string) (*object.Tree, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", id, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to get tree for %s: %w", id, err)
	}
	return tree, nil
}

// Close releases any resources held by the repository.
// For go-git, this is a no-op as the repository doesn't hold persistent resources.
func (r *GoGitRepository) Close() error {
	return nil
}

// toDomainCommit converts a go-git commit into the domain representation.
// The title is the first line of the message, with a trailing CR stripped.
func toDomainCommit(c *object.Commit) *domain.Commit {
	title, _, _ := strings.Cut(c.Message, "\n")
	title = strings.TrimSuffix(title, "\r")

	return &domain.Commit{
		ID:      c.Hash.String(),
		Title:   title,
		Message: c.Message,
	}
}

// sshURLPattern matches SSH-style remote URLs like git@github.com:owner/repo.git.
// Initialized once; never mutated.
var sshURLPattern = regexp.MustCompile(`^git@([\w.]*):([\w/-]*)\.git$`)

// normalizeRemoteURL returns an HTTPS URL for the remote. HTTPS URLs pass
// through untouched; SSH URLs are rewritten to https://{host}/{path}.
// Anything else is domain.ErrInvalidRemoteURL.
func normalizeRemoteURL(url string) (string, error) {
	url = strings.TrimSpace(url)

	if strings.HasPrefix(url, "https://") {
		return url, nil
	}

	if m := sshURLPattern.FindStringSubmatch(url); m != nil {
		return "https://" + m[1] + "/" + m[2], nil
	}

	return "", fmt.Errorf("%w: %s", domain.ErrInvalidRemoteURL, url)
}
