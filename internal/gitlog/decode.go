// Package gitlog turns the byte stream produced by `git log --format=...`
// into a sequence of RawCommit records, per the fixed control-character
// layout in LogFormat.
package gitlog

import (
	"fmt"
	"strings"
	"time"

	ccverrors "github.com/RyanGuild/ccver/internal/errors"
)

const (
	recordSep = "\x1e"
	fieldSep  = "\x1f"
)

// RefKind discriminates a ref name parsed out of the %D decorator field.
type RefKind int

const (
	RefBranch RefKind = iota
	RefTag
	RefOther
)

// Ref is one name attached to a commit (a branch tip, a tag, or a remote
// head), as reported by git's --decorate output.
type Ref struct {
	Name string
	Kind RefKind
}

// RawCommit is one decoded git log record.
type RawCommit struct {
	Hash        string
	Parents     []string
	Timestamp   time.Time
	AuthorName  string
	AuthorEmail string
	Refs        []Ref
	Subject     string
	Body        string
}

// Decode parses raw, the buffered output of a Runner, into an ordered
// slice of RawCommit (in the order git emitted them: newest first).
// Malformed records, unparseable timestamps, and duplicate hashes are
// reported as *ccverrors.Error{Kind: KindParse}.
func Decode(raw []byte) ([]RawCommit, error) {
	text := strings.TrimSuffix(string(raw), "\n")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	records := strings.Split(text, recordSep)
	commits := make([]RawCommit, 0, len(records))
	seen := make(map[string]bool, len(records))

	for i, record := range records {
		record = strings.Trim(record, "\n")
		if strings.TrimSpace(record) == "" {
			continue
		}

		fields := strings.Split(record, fieldSep)
		if len(fields) != 8 {
			return nil, ccverrors.Newf(ccverrors.KindParse, "gitlog.Decode: record %d has %d fields, want 8", i, len(fields))
		}

		hash := fields[0]
		if hash == "" {
			return nil, ccverrors.Newf(ccverrors.KindParse, "gitlog.Decode: record %d missing hash", i)
		}
		if seen[hash] {
			return nil, ccverrors.Newf(ccverrors.KindParse, "gitlog.Decode: duplicate commit hash %s", hash)
		}
		seen[hash] = true

		ts, err := time.Parse(time.RFC3339, fields[2])
		if err != nil {
			return nil, ccverrors.Wrapf(err, ccverrors.KindParse, "gitlog.Decode", "record %d (%s): unparseable timestamp %q", i, hash, fields[2])
		}

		commits = append(commits, RawCommit{
			Hash:        hash,
			Parents:     splitParents(fields[1]),
			Timestamp:   ts,
			AuthorName:  fields[3],
			AuthorEmail: fields[4],
			Refs:        parseRefs(fields[5]),
			Subject:     fields[6],
			Body:        fields[7],
		})
	}

	return commits, nil
}

func splitParents(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}

// parseRefs parses git's --decorate %D output, e.g.
// "HEAD -> main, tag: v1.0.0, origin/main".
func parseRefs(s string) []Ref {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var refs []Ref
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}

		switch {
		case strings.HasPrefix(name, "HEAD -> "):
			refs = append(refs, Ref{Name: strings.TrimPrefix(name, "HEAD -> "), Kind: RefBranch})
		case name == "HEAD":
			continue
		case strings.HasPrefix(name, "tag: "):
			refs = append(refs, Ref{Name: strings.TrimPrefix(name, "tag: "), Kind: RefTag})
		case strings.Contains(name, "/"):
			refs = append(refs, Ref{Name: name, Kind: RefOther})
		default:
			refs = append(refs, Ref{Name: name, Kind: RefBranch})
		}
	}
	return refs
}

// ShortHash returns the conventional 7-character abbreviation of hash.
func ShortHash(hash string) string {
	if len(hash) <= 7 {
		return hash
	}
	return hash[:7]
}

// String implements fmt.Stringer for debugging and log output.
func (c RawCommit) String() string {
	return fmt.Sprintf("%s %q", ShortHash(c.Hash), c.Subject)
}
