package engine

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), "GIT_AUTHOR_DATE=2024-01-01T00:00:00Z", "GIT_COMMITTER_DATE=2024-01-01T00:00:00Z")
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init", "--initial-branch=main")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test User")
	run("config", "commit.gpgsign", "false")

	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	write("README.md", "hello\n")
	run("add", ".")
	run("commit", "-m", "initial commit")

	write("README.md", "feature\n")
	run("add", ".")
	run("commit", "-m", "feat: add a feature")

	return dir
}

func TestEngineVersion(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	v, err := New().Version(context.Background(), dir, Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(v, "v0.1.0"), "Version() = %q, want a v0.1.0 prefix", v)
}

func TestEnginePeekDoesNotMutateRepo(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	e := New()

	before, err := e.Version(context.Background(), dir, Options{})
	require.NoError(t, err)

	peeked, err := e.Peek(context.Background(), dir, "feat!: break the api", Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(peeked, "v1.0.0"), "Peek() = %q, want a v1.0.0 prefix (breaking change bump)", peeked)

	after, err := e.Version(context.Background(), dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, before, after, "Peek() must not mutate repository state")
}

func TestEngineChangeLog(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	out, err := New().ChangeLog(context.Background(), dir, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "### Features")
}

func TestEngineCICheck(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	e := New()

	assert.NoError(t, e.CICheck(context.Background(), dir), "CICheck() on a clean tree")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("dirty\n"), 0o644))

	assert.Error(t, e.CICheck(context.Background(), dir), "CICheck() on a dirty tree")
}

func TestEngineTagCreatesAndRejectsDuplicate(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	e := New()
	ctx := context.Background()

	name, err := e.Tag(ctx, dir, Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "v0.1.0"), "Tag() = %q, want a v0.1.0 prefix", name)

	_, err = e.Tag(ctx, dir, Options{})
	assert.Error(t, err, "Tag() second call, want error for existing tag")
}
