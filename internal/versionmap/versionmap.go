// Package versionmap implements the core bump algorithm: a deterministic
// topological walk of a graph.CommitGraph that assigns a semver.Version to
// every commit, consistent with any pre-existing release tags.
package versionmap

import (
	"github.com/RyanGuild/ccver/internal/gitlog"
	"github.com/RyanGuild/ccver/internal/grammar"
	"github.com/RyanGuild/ccver/internal/graph"
	"github.com/RyanGuild/ccver/internal/semver"
)

// DefaultPromotionChain is the branch pipeline used to decide when
// pre-release suffixes strip: develop -> staging -> main.
var DefaultPromotionChain = []string{"develop", "staging", "main"}

// Options configures a Compute call.
type Options struct {
	// PromotionChain orders the branch pipeline from the most
	// pre-release-heavy branch to the release branch. Defaults to
	// DefaultPromotionChain when empty.
	PromotionChain []string

	// Dirty marks the working tree at HEAD as modified, triggering Step E's
	// build-metadata rule for the HEAD commit.
	Dirty bool
}

func (o Options) chain() []string {
	if len(o.PromotionChain) > 0 {
		return o.PromotionChain
	}
	return DefaultPromotionChain
}

// VersionMap is the total function hash -> Version over every node of a
// CommitGraph.
type VersionMap struct {
	versions map[string]semver.Version
}

// Get looks up the version assigned to hash.
func (vm *VersionMap) Get(hash string) (semver.Version, bool) {
	v, ok := vm.versions[hash]
	return v, ok
}

// Head returns the version assigned to g's HEAD commit.
func (vm *VersionMap) Head(g *graph.CommitGraph) (semver.Version, bool) {
	return vm.Get(g.Head())
}

// branchState tracks, per branch, the last (release core, label) group
// written and its running counter, so Step D's counter can be incremented
// or reset as the walk proceeds.
type branchState struct {
	core    semver.Version
	label   string
	counter uint64
}

// Compute walks g in deterministic topological order and assigns every
// node a Version, per steps A-E of the bump algorithm.
func Compute(g *graph.CommitGraph, opts Options) *VersionMap {
	vm := &VersionMap{versions: make(map[string]semver.Version, g.Len())}
	states := make(map[string]*branchState)
	chain := opts.chain()

	for _, hash := range g.TopoOrder() {
		n, _ := g.Node(hash)

		if n.HasExistingVersion {
			vm.versions[hash] = n.ExistingVersion
			recordState(states, n.Branch, n.ExistingVersion)
			continue
		}

		// A root starts at the zero version regardless of its semantics:
		// there is nothing yet to bump from.
		if len(n.Parents) == 0 {
			vm.versions[hash] = semver.Zero
			recordState(states, n.Branch, semver.Zero)
			continue
		}

		base := baseline(n, vm)
		core, label := bump(n, base, chain)

		st := states[n.Branch]
		counter := nextCounter(st, core, label)

		version := core
		if label != "" {
			version = core.WithPrerelease(semver.Prerelease{Label: label, Counter: counter})
		}

		if hash == g.Head() && opts.Dirty {
			version = applyDirtyBuild(states, n.Branch, core, hash)
		} else if isUnconventionalAfterRelease(g, n, vm) {
			version = version.WithBuild(gitlog.ShortHash(hash))
		}

		vm.versions[hash] = version
		states[n.Branch] = &branchState{core: core, label: label, counter: counter}
	}

	return vm
}

// baseline computes Step A's baseline: the release core of the greatest
// parent version by SemVer precedence, or the zero version for a root.
func baseline(n *graph.Node, vm *VersionMap) semver.Version {
	if len(n.Parents) == 0 {
		return semver.Zero
	}

	best := semver.Zero
	first := true
	for _, p := range n.Parents {
		v, ok := vm.Get(p)
		if !ok {
			continue
		}
		if first {
			best = v
			first = false
			continue
		}
		best = semver.Max(best, v)
	}
	return best.ReleaseCore()
}

// nextCounter applies Step D: the counter increments within a run of
// commits sharing (M, m, p, label) on the same branch, and resets to 1
// whenever the group or branch changes. Release versions (empty label)
// carry no counter.
func nextCounter(st *branchState, core semver.Version, label string) uint64 {
	if label == "" {
		return 0
	}
	if st != nil && st.label == label && st.core.Equal(core) {
		return st.counter + 1
	}
	return 1
}

func recordState(states map[string]*branchState, branch string, v semver.Version) {
	states[branch] = &branchState{
		core:    v.ReleaseCore(),
		label:   v.Prerelease().Label,
		counter: v.Prerelease().Counter,
	}
}

// isUnconventionalAfterRelease implements the second half of Step E: an
// unconventional commit lands build metadata when its first parent has
// already been released (carries no prerelease of its own). A root commit
// with no tag of its own only sits at the zero version because there is
// nothing yet to bump from; it has not actually been released, so an
// unconventional commit sitting directly on top of it stays unmarked.
func isUnconventionalAfterRelease(g *graph.CommitGraph, n *graph.Node, vm *VersionMap) bool {
	if n.Semantics.Kind() != grammar.KindUnconventional {
		return false
	}
	if len(n.Parents) == 0 {
		return false
	}
	parent, ok := g.Node(n.Parents[0])
	if !ok {
		return false
	}
	if len(parent.Parents) == 0 && !parent.HasExistingVersion {
		return false
	}
	parentVersion, ok := vm.Get(n.Parents[0])
	if !ok {
		return false
	}
	return !parentVersion.IsPrerelease()
}

// applyDirtyBuild implements the first half of Step E: HEAD with a dirty
// working tree is treated like an unconventional commit for labeling
// purposes (a "build" prerelease, counted the same way Step D counts any
// other group) and always carries build metadata identifying the commit
// it sits on top of.
func applyDirtyBuild(states map[string]*branchState, branch string, core semver.Version, headHash string) semver.Version {
	st := states[branch]
	counter := nextCounter(st, core, "build")
	return core.WithPrerelease(semver.Prerelease{Label: "build", Counter: counter}).WithBuild(gitlog.ShortHash(headHash))
}
