package grammar

import (
	"regexp"
	"strings"
)

// Regex patterns mirror the conventional-commit and breaking-change
// detection the codebase has long used for commit analysis, generalized
// here to classify into the three-way CommitSemantics variant instead of
// returning nil for anything that isn't conventional.
var (
	conventionalRegex   = regexp.MustCompile(`^(\w+)(?:\(([^)]+)\))?(!)?\s*:\s*(.+)$`)
	breakingChangeRegex = regexp.MustCompile(`(?i)^BREAKING[ -]CHANGE:\s*(.+)$`)
	mergeBranchRegex    = regexp.MustCompile(`^Merge branch '([^']+)'(?: into (\S+))?`)
)

// footerTokens lists the git trailer tokens recognized as footer lines
// when they are not themselves a breaking-change marker.
var footerTokens = map[string]bool{
	"breaking change": true,
	"breaking-change": true,
	"closes":          true,
	"fixes":           true,
	"resolves":        true,
	"refs":            true,
	"see":             true,
	"co-authored-by":  true,
	"signed-off-by":   true,
	"reviewed-by":     true,
	"acked-by":        true,
	"tested-by":       true,
}

// ParseSubject classifies a commit's subject line and body into a
// CommitSemantics value. It never fails: a subject the grammar does not
// recognize produces Unconventional.
func ParseSubject(subject, body string) CommitSemantics {
	subject = strings.TrimSpace(subject)

	if m := mergeBranchRegex.FindStringSubmatch(subject); m != nil {
		return Merge{FromBranch: m[1], IntoBranch: m[2]}
	}

	m := conventionalRegex.FindStringSubmatch(subject)
	if m == nil {
		return Unconventional{}
	}

	footers, breaking := ParseFooters(body)

	return Conventional{
		Type:        m[1],
		Scope:       m[2],
		Breaking:    m[3] == "!" || breaking,
		Description: strings.TrimSpace(m[4]),
		Footers:     footers,
	}
}

// ParseFooters scans body for "Token: value" / "Token #value" trailer
// lines and reports whether any of them is a BREAKING CHANGE (or
// BREAKING-CHANGE) marker.
func ParseFooters(body string) (footers []Footer, breaking bool) {
	if strings.TrimSpace(body) == "" {
		return nil, false
	}

	for _, line := range strings.Split(body, "\n") {
		if bc := breakingChangeRegex.FindStringSubmatch(line); bc != nil {
			footers = append(footers, Footer{Token: "BREAKING CHANGE", Value: strings.TrimSpace(bc[1])})
			breaking = true
			continue
		}

		token, value, ok := splitFooterLine(line)
		if !ok {
			continue
		}
		footers = append(footers, Footer{Token: token, Value: value})
	}

	return footers, breaking
}

// splitFooterLine recognizes "Token: value" and "Token #value" trailer
// lines, where Token is one of the known git trailer tokens.
func splitFooterLine(line string) (token, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", "", false
	}

	if idx := strings.Index(trimmed, ":"); idx > 0 {
		candidate := trimmed[:idx]
		if footerTokens[strings.ToLower(candidate)] {
			return candidate, strings.TrimSpace(trimmed[idx+1:]), true
		}
	}

	if idx := strings.Index(trimmed, " #"); idx > 0 {
		candidate := trimmed[:idx]
		if footerTokens[strings.ToLower(candidate)] {
			return candidate, strings.TrimSpace(trimmed[idx+2:]), true
		}
	}

	return "", "", false
}
