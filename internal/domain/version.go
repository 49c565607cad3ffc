package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Bump kinds accepted by Version.Bump.
const (
	BumpMajor    = "major"
	BumpMinor    = "minor"
	BumpPatch    = "patch"
	BumpSnapshot = "snapshot"
)

// versionPattern matches "{major}.{minor}.{patch}" with an optional
// pre-release suffix and an optional "-SNAPSHOT" marker. Initialized once;
// never mutated.
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(-\w+)?(-SNAPSHOT)?$`)

// Version is a semantic version. Extra holds an optional pre-release suffix;
// it is rendered verbatim and never interpreted by bump logic.
type Version struct {
	Major    int
	Minor    int
	Patch    int
	Extra    string
	Snapshot bool
}

// ParseVersion parses a version string such as "1.4.2" or "1.4.2-rc1".
// A leading "v" must already be stripped by the caller. The suffix groups
// are matched but not retained: Extra is empty and Snapshot is false on
// every parsed value. Returns ErrInvalidVersion on non-matching input,
// never a partial value.
func ParseVersion(text string) (*Version, error) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, text)
	}

	// The pattern guarantees digit-only groups.
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])

	return &Version{
		Major: major,
		Minor: minor,
		Patch: patch,
	}, nil
}

// Bump increments the version in place according to kind. Unknown kinds
// leave the version unchanged.
func (v *Version) Bump(kind string) {
	switch kind {
	case BumpMajor:
		v.Major++
		v.Minor = 0
		v.Patch = 0
		v.Snapshot = false
	case BumpMinor:
		v.Minor++
		v.Patch = 0
		v.Snapshot = false
	case BumpPatch:
		v.Patch++
		v.Snapshot = false
	case BumpSnapshot:
		v.Patch++
		v.Snapshot = true
	}
}

// String renders the version as "{major}.{minor}.{patch}{extra}{-SNAPSHOT?}".
func (v *Version) String() string {
	snapshot := ""
	if v.Snapshot {
		snapshot = "-SNAPSHOT"
	}
	return fmt.Sprintf("%d.%d.%d%s%s", v.Major, v.Minor, v.Patch, v.Extra, snapshot)
}
