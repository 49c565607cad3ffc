// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"strings"

	"github.com/MyCarrier-DevOps/gitrelease/internal/domain"
)

// releaseMarkerPrefix identifies release-marker commits, which never appear
// in generated notes.
const releaseMarkerPrefix = "Release"

// includeTitle reports whether a commit title participates in the notes.
// Release-marker commits are always excluded; when submodule is non-empty,
// only titles containing the literal "(submodule)" are included.
func includeTitle(title, submodule string) bool {
	if strings.HasPrefix(title, releaseMarkerPrefix) {
		return false
	}
	if submodule != "" && !strings.Contains(title, "("+submodule+")") {
		return false
	}
	return true
}

// Categorize builds a category table from conventional-commit titles.
// The key is the title up to the first "(" when one appears before the first
// ":", otherwise up to the ":". The description is the trimmed remainder
// after the ":". Titles without a colon are dropped silently.
func Categorize(commits []domain.Commit, submodule string) domain.CategoryTable {
	table := domain.CategoryTable{}

	for _, c := range commits {
		if !includeTitle(c.Title, submodule) {
			continue
		}

		colon := strings.Index(c.Title, ":")
		if colon < 0 {
			continue
		}

		end := colon
		if paren := strings.Index(c.Title, "("); paren >= 0 && paren < colon {
			end = paren
		}

		key := c.Title[:end]
		description := strings.TrimSpace(c.Title[colon+1:])
		table[key] = append(table[key], description)
	}

	return table
}
