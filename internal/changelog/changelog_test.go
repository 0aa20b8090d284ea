package changelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanGuild/ccver/internal/gitlog"
	"github.com/RyanGuild/ccver/internal/graph"
	"github.com/RyanGuild/ccver/internal/versionmap"
)

func at(i int) time.Time {
	return time.Date(2024, 1, 1, 0, i, 0, 0, time.UTC)
}

func TestRenderBucketsByCategory(t *testing.T) {
	t.Parallel()

	commits := []gitlog.RawCommit{
		{Hash: "a1b2c3d4", Timestamp: at(0), Subject: "initial commit", Refs: []gitlog.Ref{{Name: "v1.0.0", Kind: gitlog.RefTag}}},
		{Hash: "b2c3d4e5", Parents: []string{"a1b2c3d4"}, Timestamp: at(1), Subject: "feat(api): add widgets endpoint"},
		{Hash: "c3d4e5f6", Parents: []string{"b2c3d4e5"}, Timestamp: at(2), Subject: "fix: handle nil pointer"},
		{Hash: "d4e5f6a7", Parents: []string{"c3d4e5f6"}, Timestamp: at(3), Subject: "feat!: drop legacy config format"},
	}

	g, err := graph.Build(commits, "d4e5f6a7", "main", "v")
	require.NoError(t, err)
	vm := versionmap.Compute(g, versionmap.Options{})

	out := Render(g, vm, "d4e5f6a7")

	assert.Contains(t, out, "## v2.0.0")
	assert.Contains(t, out, "### Breaking Changes")
	assert.Contains(t, out, "### Features")
	assert.Contains(t, out, "### Bug Fixes")
	assert.Contains(t, out, "**api:** add widgets endpoint")
	assert.NotContains(t, out, "initial commit", "entries before the existing version tag must not be included")
}

func TestRenderOmitsEmptySections(t *testing.T) {
	t.Parallel()

	commits := []gitlog.RawCommit{
		{Hash: "h1", Timestamp: at(0), Subject: "initial commit"},
		{Hash: "h2", Parents: []string{"h1"}, Timestamp: at(1), Subject: "fix: typo"},
	}
	g, err := graph.Build(commits, "h2", "main", "v")
	require.NoError(t, err)
	vm := versionmap.Compute(g, versionmap.Options{})

	out := Render(g, vm, "h2")
	assert.NotContains(t, out, "### Features", "Features section should be omitted when empty")
	assert.NotContains(t, out, "### Breaking Changes", "Breaking Changes section should be omitted when empty")
}
