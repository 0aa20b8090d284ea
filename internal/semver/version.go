// Package semver provides the Version value type used throughout ccver:
// an immutable (major, minor, patch, prerelease, build) tuple with SemVer
// 2.0.0 ordering.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is a value object representing a semantic version. Immutable by
// design; every method that would "change" a version returns a new one.
type Version struct {
	major      uint64
	minor      uint64
	patch      uint64
	prerelease Prerelease
	build      string
}

// Prerelease is the pair (label, counter) that forms a version's
// pre-release suffix, e.g. "alpha.3" is {Label: "alpha", Counter: 3}.
type Prerelease struct {
	Label   string
	Counter uint64
}

// IsZero reports whether this is the empty prerelease (a release version).
func (p Prerelease) IsZero() bool {
	return p.Label == ""
}

// String renders the prerelease as it appears in a version string, without
// the leading '-'.
func (p Prerelease) String() string {
	if p.Label == "" {
		return ""
	}
	if p.Counter == 0 {
		return p.Label
	}
	return fmt.Sprintf("%s.%d", p.Label, p.Counter)
}

// Zero is the zero version, 0.0.0.
var Zero = Version{}

var versionRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`)

// New builds a release version with no prerelease or build metadata.
func New(major, minor, patch uint64) Version {
	return Version{major: major, minor: minor, patch: patch}
}

// Parse parses a SemVer 2.0.0 string, with an optional leading "v", into a
// Version. Returns an error if the string does not match the grammar.
func Parse(s string) (Version, error) {
	m := versionRegex.FindStringSubmatch(s)
	if m == nil {
		return Zero, fmt.Errorf("semver: invalid version %q", s)
	}

	major, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("semver: invalid major in %q: %w", s, err)
	}
	minor, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("semver: invalid minor in %q: %w", s, err)
	}
	patch, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("semver: invalid patch in %q: %w", s, err)
	}

	return Version{
		major:      major,
		minor:      minor,
		patch:      patch,
		prerelease: parsePrerelease(m[4]),
		build:      m[5],
	}, nil
}

// parsePrerelease splits "label.N" into its label and trailing numeric
// counter; a prerelease with no numeric final component gets counter 0.
func parsePrerelease(raw string) Prerelease {
	if raw == "" {
		return Prerelease{}
	}
	idx := strings.LastIndex(raw, ".")
	if idx < 0 {
		return Prerelease{Label: raw}
	}
	tail := raw[idx+1:]
	n, err := strconv.ParseUint(tail, 10, 64)
	if err != nil {
		return Prerelease{Label: raw}
	}
	return Prerelease{Label: raw[:idx], Counter: n}
}

// Major returns the major component.
func (v Version) Major() uint64 { return v.major }

// Minor returns the minor component.
func (v Version) Minor() uint64 { return v.minor }

// Patch returns the patch component.
func (v Version) Patch() uint64 { return v.patch }

// Prerelease returns the prerelease component.
func (v Version) Prerelease() Prerelease { return v.prerelease }

// Build returns the build metadata.
func (v Version) Build() string { return v.build }

// IsPrerelease reports whether v carries a prerelease label.
func (v Version) IsPrerelease() bool { return !v.prerelease.IsZero() }

// ReleaseCore returns the (major, minor, patch) core with no prerelease or
// build metadata, the "baseline" a child commit inherits from a parent.
func (v Version) ReleaseCore() Version {
	return Version{major: v.major, minor: v.minor, patch: v.patch}
}

// String renders the version without a "v" prefix.
func (v Version) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d.%d.%d", v.major, v.minor, v.patch)
	if !v.prerelease.IsZero() {
		sb.WriteByte('-')
		sb.WriteString(v.prerelease.String())
	}
	if v.build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.build)
	}
	return sb.String()
}

// TagString renders the version with a "v" prefix, the form used for git
// tags.
func (v Version) TagString() string {
	return "v" + v.String()
}

// WithPrerelease returns a copy of v carrying the given prerelease.
func (v Version) WithPrerelease(p Prerelease) Version {
	v.prerelease = p
	return v
}

// WithoutPrerelease returns a copy of v with no prerelease suffix.
func (v Version) WithoutPrerelease() Version {
	v.prerelease = Prerelease{}
	return v
}

// WithBuild returns a copy of v carrying the given build metadata.
func (v Version) WithBuild(build string) Version {
	v.build = build
	return v
}

// WithoutBuild returns a copy of v with no build metadata.
func (v Version) WithoutBuild() Version {
	v.build = ""
	return v
}

// BumpMajor returns a release version with major+1, minor and patch reset.
func (v Version) BumpMajor() Version {
	return Version{major: v.major + 1}
}

// BumpMinor returns a release version with minor+1, patch reset.
func (v Version) BumpMinor() Version {
	return Version{major: v.major, minor: v.minor + 1}
}

// BumpPatch returns a release version with patch+1.
func (v Version) BumpPatch() Version {
	return Version{major: v.major, minor: v.minor, patch: v.patch + 1}
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than
// other, per SemVer 2.0.0 precedence. Build metadata is never compared.
func (v Version) Compare(other Version) int {
	if v.major != other.major {
		return cmpUint(v.major, other.major)
	}
	if v.minor != other.minor {
		return cmpUint(v.minor, other.minor)
	}
	if v.patch != other.patch {
		return cmpUint(v.patch, other.patch)
	}

	switch {
	case v.prerelease.IsZero() && other.prerelease.IsZero():
		return 0
	case v.prerelease.IsZero():
		return 1
	case other.prerelease.IsZero():
		return -1
	}

	if v.prerelease.Label != other.prerelease.Label {
		if v.prerelease.Label < other.prerelease.Label {
			return -1
		}
		return 1
	}
	return cmpUint(v.prerelease.Counter, other.prerelease.Counter)
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// LessThan reports whether v < other.
func (v Version) LessThan(other Version) bool { return v.Compare(other) < 0 }

// GreaterThan reports whether v > other.
func (v Version) GreaterThan(other Version) bool { return v.Compare(other) > 0 }

// Equal reports whether v and other are equal ignoring build metadata.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// Max returns the greater of a and b by Compare.
func Max(a, b Version) Version {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}
