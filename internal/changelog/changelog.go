// Package changelog renders the commits between a CommitGraph's HEAD and
// the nearest ancestor already carrying a released version into a
// Markdown changelog, bucketed by commit category.
package changelog

import (
	"strings"

	"github.com/RyanGuild/ccver/internal/gitlog"
	"github.com/RyanGuild/ccver/internal/grammar"
	"github.com/RyanGuild/ccver/internal/graph"
	"github.com/RyanGuild/ccver/internal/semver"
	"github.com/RyanGuild/ccver/internal/versionmap"
)

// Entry is one commit rendered into the changelog, reduced to what a
// changelog line needs.
type Entry struct {
	Description string
	Scope       string
	ShortHash   string
}

// Section is a titled bucket of entries, rendered in the fixed order
// breaking > feat > fix > perf > other.
type Section struct {
	Title   string
	Entries []Entry
}

// Render walks g from head back to (but not including) the nearest
// ancestor that already carries a version, and renders every conventional
// commit in between as a Markdown changelog for the version vm assigns to
// head. Merge and unconventional commits are not listed.
func Render(g *graph.CommitGraph, vm *versionmap.VersionMap, head string) string {
	commits := collect(g, head)
	sections := bucket(commits)

	v, _ := vm.Get(head)

	var sb strings.Builder
	estimatedSize := 32
	for _, s := range sections {
		estimatedSize += 16 + len(s.Title)
		for _, e := range s.Entries {
			estimatedSize += len(e.Description) + 16
		}
	}
	sb.Grow(estimatedSize)

	renderHeading(&sb, v)

	for _, s := range sections {
		if len(s.Entries) == 0 {
			continue
		}
		sb.WriteString("### ")
		sb.WriteString(s.Title)
		sb.WriteString("\n\n")
		for _, e := range s.Entries {
			renderEntry(&sb, e)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderHeading(sb *strings.Builder, v semver.Version) {
	sb.WriteString("## ")
	sb.WriteString(v.TagString())
	sb.WriteString("\n\n")
}

func renderEntry(sb *strings.Builder, e Entry) {
	sb.WriteString("- ")
	if e.Scope != "" {
		sb.WriteString("**")
		sb.WriteString(e.Scope)
		sb.WriteString(":** ")
	}
	sb.WriteString(e.Description)
	if e.ShortHash != "" {
		sb.WriteString(" (")
		sb.WriteString(e.ShortHash)
		sb.WriteString(")")
	}
	sb.WriteString("\n")
}

// collect walks g's parent edges from head (first-parent only, mirroring
// how a release branch accumulates history) until it reaches a commit
// that already carries an existing version tag, or a root.
func collect(g *graph.CommitGraph, head string) []*graph.Node {
	var out []*graph.Node

	hash := head
	for {
		n, ok := g.Node(hash)
		if !ok {
			break
		}
		if n.HasExistingVersion && hash != head {
			break
		}
		out = append(out, n)
		if len(n.Parents) == 0 {
			break
		}
		hash = n.Parents[0]
	}

	return out
}

func bucket(commits []*graph.Node) []Section {
	breaking := Section{Title: "Breaking Changes"}
	feat := Section{Title: "Features"}
	fix := Section{Title: "Bug Fixes"}
	perf := Section{Title: "Performance Improvements"}
	other := Section{Title: "Other Changes"}

	for _, n := range commits {
		c, ok := n.Semantics.(grammar.Conventional)
		if !ok {
			continue
		}

		entry := Entry{
			Description: c.Description,
			Scope:       c.Scope,
			ShortHash:   gitlog.ShortHash(n.Hash),
		}

		switch c.Category() {
		case grammar.CategoryBreaking:
			breaking.Entries = append(breaking.Entries, entry)
		case grammar.CategoryFeat:
			feat.Entries = append(feat.Entries, entry)
		case grammar.CategoryFixPerf:
			if c.Type == "perf" {
				perf.Entries = append(perf.Entries, entry)
			} else {
				fix.Entries = append(fix.Entries, entry)
			}
		default:
			other.Entries = append(other.Entries, entry)
		}
	}

	return []Section{breaking, feat, fix, perf, other}
}
