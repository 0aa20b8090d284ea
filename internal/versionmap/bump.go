package versionmap

import (
	"github.com/RyanGuild/ccver/internal/grammar"
	"github.com/RyanGuild/ccver/internal/graph"
	"github.com/RyanGuild/ccver/internal/semver"
)

// bump applies Steps B and C of the algorithm: it returns the release
// core and pre-release label a node's version should carry, given its
// baseline and parsed semantics. Merge commits never bump the release
// core; they only ever relabel to the receiving branch's promotion label,
// which is exactly Step C's promotion/relabel/downward-merge behavior
// collapsed into one rule once the receiving branch's identity is already
// known (graph.Build assigns it via first-parent inheritance).
func bump(n *graph.Node, base semver.Version, chain []string) (core semver.Version, label string) {
	switch s := n.Semantics.(type) {
	case grammar.Conventional:
		switch s.Category() {
		case grammar.CategoryBreaking:
			return base.BumpMajor(), promotionLabel(n.Branch, chain)
		case grammar.CategoryFeat:
			return base.BumpMinor(), promotionLabel(n.Branch, chain)
		case grammar.CategoryFixPerf:
			return base.BumpPatch(), promotionLabel(n.Branch, chain)
		default:
			return base, promotionLabel(n.Branch, chain)
		}
	case grammar.Merge:
		return base, promotionLabel(n.Branch, chain)
	default: // grammar.Unconventional
		label := promotionLabel(n.Branch, chain)
		if label == "" {
			label = "build"
		}
		return base, label
	}
}

// promotionLabel maps a branch name to its pre-release label according to
// its position in the promotion chain: the last entry (main) releases
// with no label, the second-to-last promotes to "rc", the first is
// "alpha", and anything else — including a feature branch entirely
// outside the chain — uses the branch's own name as its label.
func promotionLabel(branch string, chain []string) string {
	if len(chain) == 0 {
		return branch
	}

	last := len(chain) - 1
	switch branch {
	case chain[last]:
		return ""
	case chain[0]:
		if last == 0 {
			return ""
		}
		return "alpha"
	}
	if last >= 1 && branch == chain[last-1] {
		return "rc"
	}
	return branch
}
