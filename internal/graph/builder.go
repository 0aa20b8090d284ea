package graph

import (
	"sort"
	"strings"

	mastersemver "github.com/Masterminds/semver/v3"

	ccverrors "github.com/RyanGuild/ccver/internal/errors"
	"github.com/RyanGuild/ccver/internal/gitlog"
	"github.com/RyanGuild/ccver/internal/grammar"
	"github.com/RyanGuild/ccver/internal/semver"
)

// Build implements the five-step commit graph algorithm: insert nodes,
// wire parent/child edges, parse semantics, assign branch identity in
// reverse-topological order, and scan refs for existing version tags.
// tagPrefix is stripped from a ref name, when present, before the name is
// parsed as a version (e.g. "v" for "v1.2.3"; a bare "1.2.3" also counts);
// an empty tagPrefix defaults to "v".
func Build(commits []gitlog.RawCommit, head string, defaultBranch string, tagPrefix string) (*CommitGraph, error) {
	if tagPrefix == "" {
		tagPrefix = "v"
	}
	g := &CommitGraph{nodes: make(map[string]*Node, len(commits)), head: head}

	// Step 1-3: insert nodes and parse semantics. Edges are implicit in
	// Parents; Children is filled in below once every node exists.
	for _, c := range commits {
		g.nodes[c.Hash] = &Node{
			Hash:        c.Hash,
			Parents:     c.Parents,
			Timestamp:   c.Timestamp,
			AuthorName:  c.AuthorName,
			AuthorEmail: c.AuthorEmail,
			Subject:     c.Subject,
			Body:        c.Body,
			Refs:        c.Refs,
			Semantics:   grammar.ParseSubject(c.Subject, c.Body),
		}
	}

	if _, ok := g.nodes[head]; head != "" && !ok {
		return nil, ccverrors.Newf(ccverrors.KindGraph, "graph.Build: HEAD %s not present in log", head)
	}

	// Step 2: child edges, the reverse of the parent edges already stored.
	for _, n := range g.nodes {
		for _, p := range n.Parents {
			parent, ok := g.nodes[p]
			if !ok {
				return nil, ccverrors.Newf(ccverrors.KindGraph, "graph.Build: commit %s references missing parent %s", n.Hash, p)
			}
			parent.Children = append(parent.Children, n.Hash)
		}
	}

	order, err := topoSort(g.nodes)
	if err != nil {
		return nil, err
	}
	g.topoOrder = order

	// Step 4: assign branch identity in reverse-topological order (roots
	// first) so first-parent inheritance is well-defined.
	for _, hash := range order {
		n := g.nodes[hash]
		n.Branch = inferBranch(n, g.nodes, defaultBranch)
	}

	// Step 5: scan every ref name (branch or tag) for one that parses as a
	// version; the first match on a node wins.
	for _, n := range g.nodes {
		for _, ref := range n.Refs {
			if v, ok := parseVersionRef(ref.Name, tagPrefix); ok {
				n.ExistingVersion = v
				n.HasExistingVersion = true
				break
			}
		}
	}

	return g, nil
}

func parseVersionRef(name string, tagPrefix string) (semver.Version, bool) {
	trimmed := strings.TrimPrefix(name, tagPrefix)
	if _, err := mastersemver.StrictNewVersion(trimmed); err != nil {
		return semver.Version{}, false
	}
	v, err := semver.Parse(trimmed)
	if err != nil {
		return semver.Version{}, false
	}
	return v, true
}

// inferBranch applies the tie-break order from the branch identity rule:
// a branch ref on the node wins (lexicographically first if several),
// otherwise inherit from the first parent, otherwise fall back to the
// configured default for a root with no branch ref.
func inferBranch(n *Node, nodes map[string]*Node, defaultBranch string) string {
	var branchRefs []string
	for _, ref := range n.Refs {
		if ref.Kind == gitlog.RefBranch {
			branchRefs = append(branchRefs, ref.Name)
		}
	}
	if len(branchRefs) > 0 {
		sort.Strings(branchRefs)
		return branchRefs[0]
	}

	if len(n.Parents) > 0 {
		if first, ok := nodes[n.Parents[0]]; ok {
			return first.Branch
		}
	}

	return defaultBranch
}

// topoSort returns every hash in nodes ordered so that every parent
// precedes its children, breaking ties by ascending timestamp then by
// hash, per the determinism guard.
func topoSort(nodes map[string]*Node) ([]string, error) {
	indegree := make(map[string]int, len(nodes))
	for hash, n := range nodes {
		indegree[hash] = len(n.Parents)
	}

	ready := make([]string, 0, len(nodes))
	for hash, deg := range indegree {
		if deg == 0 {
			ready = append(ready, hash)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(ready) > 0 {
		sortReady(ready, nodes)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, childHash := range nodes[next].Children {
			indegree[childHash]--
			if indegree[childHash] == 0 {
				ready = append(ready, childHash)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, ccverrors.New(ccverrors.KindGraph, "graph.Build: cycle detected in commit history")
	}

	return order, nil
}

func sortReady(ready []string, nodes map[string]*Node) {
	sort.Slice(ready, func(i, j int) bool {
		a, b := nodes[ready[i]], nodes[ready[j]]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.Hash < b.Hash
	})
}

// Roots returns every node with no parents, ordered by ascending
// timestamp then hash — the earliest is "the" root for version
// baselining when history has more than one.
func (g *CommitGraph) Roots() []*Node {
	var roots []*Node
	for _, n := range g.nodes {
		if len(n.Parents) == 0 {
			roots = append(roots, n)
		}
	}
	sort.Slice(roots, func(i, j int) bool {
		if !roots[i].Timestamp.Equal(roots[j].Timestamp) {
			return roots[i].Timestamp.Before(roots[j].Timestamp)
		}
		return roots[i].Hash < roots[j].Hash
	})
	return roots
}
