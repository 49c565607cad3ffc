package usecases

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MyCarrier-DevOps/gitrelease/internal/domain"
)

// Logger defines the logging interface required by the composer.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// NoteComposer synthesizes the release-notes document from the repository
// state: last release tag, commit range, categorized changes, edited files
// and compare link. It implements domain.Composer.
type NoteComposer struct {
	repo   domain.GitRepository
	logger Logger
}

// NewNoteComposer creates a new NoteComposer with the given dependencies.
func NewNoteComposer(repo domain.GitRepository, log Logger) *NoteComposer {
	return &NoteComposer{
		repo:   repo,
		logger: log,
	}
}

// Compose gathers all inputs and renders the full document. The document is
// returned as a single string so the caller can write it all-or-nothing;
// no section reaches the output before every backend read has succeeded.
//
// Returns domain.ErrNoReleaseTag when no release tag matches the pattern,
// which callers treat as "nothing to do" rather than a failure.
func (c *NoteComposer) Compose(ctx context.Context, input domain.ComposeInput) (*domain.ComposeOutput, error) {
	c.logger.Info(ctx, "starting release-note composition", map[string]interface{}{
		"subdir":    input.Subdir,
		"submodule": input.Submodule,
	})

	tag, err := c.repo.LastReleaseTag(ctx, input.Subdir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve last release tag: %w", err)
	}
	if tag == nil {
		return nil, domain.ErrNoReleaseTag
	}

	head, err := c.repo.HeadCommit(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	repoURL, err := c.repo.RemoteURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve remote URL: %w", err)
	}

	commits, err := c.repo.CommitsInRange(ctx, head.ID, tag.CommitID)
	if err != nil {
		return nil, fmt.Errorf("failed to walk commit range: %w", err)
	}

	paths, err := c.repo.ChangedPaths(ctx, tag.CommitID, head.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to diff trees: %w", err)
	}

	c.logger.Debug(ctx, "gathered repository state", map[string]interface{}{
		"tag":           tag.Name,
		"tag_commit":    tag.CommitID,
		"head":          head.ID,
		"commits_count": len(commits),
		"changed_paths": len(paths),
	})

	table := Categorize(commits, input.Submodule)

	header, next, err := renderHeader(tag.Name, table, time.Now())
	if err != nil {
		return nil, err
	}

	var doc strings.Builder
	doc.WriteString(header)
	doc.WriteString(renderCategorized(table))
	doc.WriteString(renderCommitList(commits, input.Submodule, repoURL))
	doc.WriteString(renderEditedFiles(paths, input.Subdir))
	doc.WriteString(renderCompareLink(repoURL, tag.CommitID))
	doc.WriteString(footerText)

	c.logger.Info(ctx, "release notes composed", map[string]interface{}{
		"previous_tag": tag.Name,
		"next_version": next.String(),
		"commits":      len(commits),
	})

	return &domain.ComposeOutput{
		Document:    doc.String(),
		NextVersion: next.String(),
		PreviousTag: tag.Name,
		CommitCount: len(commits),
	}, nil
}

// headerTemplate embeds the next version and the local calendar date.
const headerTemplate = ":robot: I have created a release \\*beep\\* \\*boop\\*\n---\n### %s / %s\n\n"

// footerText is the fixed attribution line ending every document.
const footerText = "\n\n\nThis PR was generated with [gitrelease](https://github.com/MyCarrier-DevOps/gitrelease).\n"

// versionFromTagName extracts the raw version from a tag name: the last
// "/"-delimited segment, with a leading "v" stripped.
func versionFromTagName(name string) string {
	segment := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		segment = name[i+1:]
	}
	return strings.TrimPrefix(segment, "v")
}

// bumpKindFor picks the version bump from the categorized changes: minor
// when any feature landed, patch otherwise.
func bumpKindFor(table domain.CategoryTable) string {
	if len(table["feat"]) > 0 {
		return domain.BumpMinor
	}
	return domain.BumpPatch
}

// renderHeader computes the next version from the previous release tag and
// renders the document header with the given date.
func renderHeader(tagName string, table domain.CategoryTable, now time.Time) (string, *domain.Version, error) {
	version, err := domain.ParseVersion(versionFromTagName(tagName))
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse version from tag %q: %w", tagName, err)
	}

	version.Bump(bumpKindFor(table))

	return fmt.Sprintf(headerTemplate, version, now.Format("2006-01-02")), version, nil
}

// category describes how a raw key renders in the categorized-changes
// section. Keys with skip set (and unrecognized keys) never render.
type category struct {
	display string
	skip    bool
}

var categories = map[string]category{
	"feat":     {display: "Features"},
	"fix":      {display: "Bug Fixes"},
	"docs":     {display: "Documentation"},
	"style":    {display: "Styles", skip: true},
	"refactor": {display: "Code Refactoring", skip: true},
	"test":     {display: "Test Refactoring", skip: true},
	"chore":    {display: "Miscellaneous Chores", skip: true},
	"perf":     {display: "Performance Improvements"},
}

// renderCategorized renders the displayed categories in sorted key order so
// output is deterministic across runs.
func renderCategorized(table domain.CategoryTable) string {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		cat, ok := categories[key]
		if !ok || cat.skip {
			continue
		}

		fmt.Fprintf(&sb, "#### %s\n\n", cat.display)
		for _, text := range table[key] {
			fmt.Fprintf(&sb, "* %s\n", text)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("---\n")

	return sb.String()
}

// renderCommitList renders every commit passing the marker and submodule
// filters as a link bullet. Unlike categorization, a colon is not required.
func renderCommitList(commits []domain.Commit, submodule, repoURL string) string {
	var sb strings.Builder
	sb.WriteString("### Commits since last release:\n\n")

	for _, c := range commits {
		if !includeTitle(c.Title, submodule) {
			continue
		}
		fmt.Fprintf(&sb, "* [%s](%s/commit/%s)\n", c.Title, repoURL, c.ID)
	}

	sb.WriteString("\n\n")
	return sb.String()
}

// renderEditedFiles lists changed paths inside a preformatted block,
// restricted to "{folder}/" when a folder scope is set.
func renderEditedFiles(paths []string, folder string) string {
	prefix := ""
	if folder != "" {
		prefix = folder + "/"
	}

	var sb strings.Builder
	sb.WriteString("### Files edited since last release:\n\n<pre><code>")
	for _, p := range paths {
		if strings.HasPrefix(p, prefix) {
			sb.WriteString(p)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("</code></pre>\n")

	return sb.String()
}

// renderCompareLink renders the compare line against the previous release.
func renderCompareLink(repoURL, tagCommitID string) string {
	return fmt.Sprintf("[Compare Changes](%s/compare/%s...HEAD)", repoURL, tagCommitID)
}
