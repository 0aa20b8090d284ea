// Package engine wires the log parser, graph builder, version map, and
// formatter into the five operations the CLI exposes: version, peek,
// change-log, the CI dirty-tree check, and tag.
package engine

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/RyanGuild/ccver/internal/changelog"
	ccverrors "github.com/RyanGuild/ccver/internal/errors"
	"github.com/RyanGuild/ccver/internal/gitio"
	"github.com/RyanGuild/ccver/internal/gitlog"
	"github.com/RyanGuild/ccver/internal/graph"
	"github.com/RyanGuild/ccver/internal/semver"
	"github.com/RyanGuild/ccver/internal/versionmap"
)

// Options configures a single engine operation. Every field carries a
// CLI-flag-equivalent value; zero values fall back to package defaults
// (TagPrefix "v", DefaultBranch "main", PromotionChain
// develop/staging/main).
type Options struct {
	Ref            string
	TagPrefix      string
	FormatTemplate string
	DefaultBranch  string
	PromotionChain []string
	// NoPre strips prerelease and build metadata before formatting,
	// leaving only the release core.
	NoPre bool
}

func (o Options) display(v semver.Version) string {
	if o.NoPre {
		v = v.WithoutPrerelease().WithoutBuild()
	}
	return semver.Format(v, o.formatTemplate())
}

func (o Options) tagPrefix() string {
	if o.TagPrefix != "" {
		return o.TagPrefix
	}
	return "v"
}

func (o Options) defaultBranch() string {
	if o.DefaultBranch != "" {
		return o.DefaultBranch
	}
	return "main"
}

func (o Options) formatTemplate() string {
	if o.FormatTemplate != "" {
		return o.FormatTemplate
	}
	return semver.DefaultFormat
}

func (o Options) versionMapOptions(dirty bool) versionmap.Options {
	return versionmap.Options{PromotionChain: o.PromotionChain, Dirty: dirty}
}

// Engine holds the collaborators the facade wires together. The zero
// value is not usable; construct with New.
type Engine struct {
	runner gitlog.Runner
	logger *log.Logger
}

// defaultLogger returns a logger at warn level so an Engine built
// without NewWithLogger stays quiet unless something goes wrong.
func defaultLogger() *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	l.SetLevel(log.WarnLevel)
	return l
}

// New returns an Engine that shells out to the system git binary.
func New() *Engine {
	return &Engine{runner: gitlog.ExecRunner{}, logger: defaultLogger()}
}

// NewWithRunner returns an Engine using a custom Runner, for tests that
// want to exercise the facade against a fixed log stream.
func NewWithRunner(r gitlog.Runner) *Engine {
	return &Engine{runner: r, logger: defaultLogger()}
}

// NewWithLogger returns an Engine that shells out to the system git
// binary and logs every stage through logger, letting the CLI share its
// own configured logger (level, formatter) with the engine.
func NewWithLogger(logger *log.Logger) *Engine {
	return &Engine{runner: gitlog.ExecRunner{}, logger: logger}
}

// resolved bundles the artifacts every operation needs so Version, Peek,
// and ChangeLog don't each re-derive them.
type resolved struct {
	repo *gitio.Repo
	g    *graph.CommitGraph
	vm   *versionmap.VersionMap
	head string
}

func (e *Engine) build(ctx context.Context, path string, opts Options) (*resolved, error) {
	const op = "engine.build"

	e.logger.Debug("build: entry", "path", path, "ref", opts.Ref)

	raw, err := e.runner.Run(ctx, path)
	if err != nil {
		e.logger.Error("build: git log failed", "op", op, "err", err)
		return nil, err
	}

	commits, err := gitlog.Decode(raw)
	if err != nil {
		e.logger.Error("build: parse failed", "op", op, "err", err)
		return nil, err
	}

	repo, err := gitio.Open(path)
	if err != nil {
		e.logger.Error("build: open repo failed", "op", op, "err", err)
		return nil, err
	}

	head := opts.Ref
	dirty := false
	if head == "" {
		head, err = repo.HeadHash(ctx)
		if err != nil {
			e.logger.Error("build: HEAD resolution failed", "op", op, "err", err)
			return nil, err
		}
		clean, err := repo.IsClean(ctx)
		if err != nil {
			e.logger.Error("build: dirty-tree check failed", "op", op, "err", err)
			return nil, err
		}
		dirty = !clean
	}

	g, err := graph.Build(commits, head, opts.defaultBranch(), opts.tagPrefix())
	if err != nil {
		e.logger.Error("build: graph construction failed", "op", op, "err", err)
		return nil, ccverrors.GraphWrap(err, op, "failed to build commit graph")
	}

	vm := versionmap.Compute(g, opts.versionMapOptions(dirty))

	e.logger.Debug("build: exit", "head", head, "commits", g.Len(), "dirty", dirty)

	return &resolved{repo: repo, g: g, vm: vm, head: head}, nil
}

// Version returns the formatted version string for opts.Ref (HEAD if
// empty).
func (e *Engine) Version(ctx context.Context, path string, opts Options) (string, error) {
	e.logger.Debug("Version: entry", "path", path)

	r, err := e.build(ctx, path, opts)
	if err != nil {
		return "", err
	}

	v, ok := r.vm.Get(r.head)
	if !ok {
		err := ccverrors.Graph("engine.Version", "HEAD not present in computed version map")
		e.logger.Error("Version: exit", "err", err)
		return "", err
	}

	out := opts.display(v)
	e.logger.Debug("Version: exit", "version", out)
	return out, nil
}

// Peek computes the version a new commit with subject would receive if
// committed on top of HEAD right now, without mutating the repository.
func (e *Engine) Peek(ctx context.Context, path, subject string, opts Options) (string, error) {
	const op = "engine.Peek"

	e.logger.Debug("Peek: entry", "path", path, "subject", subject)

	raw, err := e.runner.Run(ctx, path)
	if err != nil {
		e.logger.Error("Peek: git log failed", "op", op, "err", err)
		return "", err
	}
	commits, err := gitlog.Decode(raw)
	if err != nil {
		e.logger.Error("Peek: parse failed", "op", op, "err", err)
		return "", err
	}

	repo, err := gitio.Open(path)
	if err != nil {
		e.logger.Error("Peek: open repo failed", "op", op, "err", err)
		return "", err
	}
	headHash, err := repo.HeadHash(ctx)
	if err != nil {
		e.logger.Error("Peek: HEAD resolution failed", "op", op, "err", err)
		return "", err
	}

	synthetic := gitlog.RawCommit{
		Hash:      "PEEK",
		Parents:   []string{headHash},
		Timestamp: peekTimestamp(),
		Subject:   subject,
	}
	commits = append(commits, synthetic)

	g, err := graph.Build(commits, synthetic.Hash, opts.defaultBranch(), opts.tagPrefix())
	if err != nil {
		e.logger.Error("Peek: graph construction failed", "op", op, "err", err)
		return "", ccverrors.GraphWrap(err, op, "failed to build commit graph")
	}

	vm := versionmap.Compute(g, opts.versionMapOptions(false))
	v, ok := vm.Get(synthetic.Hash)
	if !ok {
		err := ccverrors.Graph(op, "synthetic peek commit missing from computed version map")
		e.logger.Error("Peek: exit", "err", err)
		return "", err
	}

	out := opts.display(v)
	e.logger.Debug("Peek: exit", "version", out)
	return out, nil
}

// peekTimestamp is a variable, not time.Now(), so a test can pin it;
// production always wants "after everything else in the log".
var peekTimestamp = func() time.Time { return time.Now() }

// ChangeLog renders the Markdown changelog for HEAD (or opts.Ref) back
// to the nearest ancestor that already carries a released version.
func (e *Engine) ChangeLog(ctx context.Context, path string, opts Options) (string, error) {
	e.logger.Debug("ChangeLog: entry", "path", path)

	r, err := e.build(ctx, path, opts)
	if err != nil {
		return "", err
	}

	out := changelog.Render(r.g, r.vm, r.head)
	e.logger.Debug("ChangeLog: exit", "bytes", len(out))
	return out, nil
}

// CICheck reports a KindConflict error when the working tree at path is
// dirty, the signal the CLI's --ci mode uses to fail a release check.
func (e *Engine) CICheck(ctx context.Context, path string) error {
	const op = "engine.CICheck"

	e.logger.Debug("CICheck: entry", "path", path)

	repo, err := gitio.Open(path)
	if err != nil {
		e.logger.Error("CICheck: open repo failed", "op", op, "err", err)
		return err
	}
	clean, err := repo.IsClean(ctx)
	if err != nil {
		e.logger.Error("CICheck: dirty-tree check failed", "op", op, "err", err)
		return err
	}
	if !clean {
		err := ccverrors.Conflict(op, "working tree is dirty")
		e.logger.Error("CICheck: exit", "err", err)
		return err
	}
	e.logger.Debug("CICheck: exit", "clean", true)
	return nil
}

// Tag computes HEAD's version and creates an annotated tag for it,
// returning the tag name. It refuses to overwrite an existing tag.
func (e *Engine) Tag(ctx context.Context, path string, opts Options) (string, error) {
	const op = "engine.Tag"

	e.logger.Debug("Tag: entry", "path", path)

	r, err := e.build(ctx, path, opts)
	if err != nil {
		return "", err
	}

	v, ok := r.vm.Get(r.head)
	if !ok {
		err := ccverrors.Graph(op, "HEAD not present in computed version map")
		e.logger.Error("Tag: exit", "err", err)
		return "", err
	}

	name := opts.tagPrefix() + v.String()

	exists, err := r.repo.TagExists(ctx, name)
	if err != nil {
		e.logger.Error("Tag: tag lookup failed", "op", op, "err", err)
		return "", err
	}
	if exists {
		err := ccverrors.IO(op, "tag "+name+" already exists")
		e.logger.Error("Tag: exit", "err", err)
		return "", err
	}

	if err := r.repo.CreateTag(ctx, name, r.head, "release "+name); err != nil {
		e.logger.Error("Tag: create tag failed", "op", op, "err", err)
		return "", err
	}

	e.logger.Debug("Tag: exit", "tag", name)
	return name, nil
}
