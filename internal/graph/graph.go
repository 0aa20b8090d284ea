// Package graph folds a sequence of gitlog.RawCommit records into a
// CommitGraph: an arena of nodes keyed by hash, with parsed semantics,
// inferred branch identity, and any existing version tags attached.
package graph

import (
	"time"

	"github.com/RyanGuild/ccver/internal/gitlog"
	"github.com/RyanGuild/ccver/internal/grammar"
	"github.com/RyanGuild/ccver/internal/semver"
)

// Node is one commit in the graph, identified by its hash. Parent and
// child references are by hash, not pointer, so the arena has no
// ownership cycles for the garbage collector to reason about.
type Node struct {
	Hash        string
	Parents     []string
	Children    []string
	Timestamp   time.Time
	AuthorName  string
	AuthorEmail string
	Subject     string
	Body        string
	Refs        []gitlog.Ref

	Semantics grammar.CommitSemantics
	Branch    string

	// ExistingVersion holds the version parsed from one of Refs, if any;
	// HasExistingVersion distinguishes "tagged 0.0.0" from "untagged".
	ExistingVersion    semver.Version
	HasExistingVersion bool
}

// CommitGraph is the reconstructed DAG: nodes keyed by hash, plus the
// commit hash of HEAD and a deterministic topological ordering.
type CommitGraph struct {
	nodes     map[string]*Node
	topoOrder []string
	head      string
}

// Node looks up a commit by hash.
func (g *CommitGraph) Node(hash string) (*Node, bool) {
	n, ok := g.nodes[hash]
	return n, ok
}

// Head returns HEAD's commit hash.
func (g *CommitGraph) Head() string {
	return g.head
}

// Len returns the number of nodes in the graph.
func (g *CommitGraph) Len() int {
	return len(g.nodes)
}

// TopoOrder returns every node hash in deterministic topological order:
// parents before children, ties broken by author timestamp then hash.
func (g *CommitGraph) TopoOrder() []string {
	return g.topoOrder
}
