// Package gitio wraps the handful of repository-local concerns the
// text-log contract does not cover: working-tree cleanliness, HEAD hash
// resolution, and annotated tag creation. Everything else (commit
// history, refs, parent graph) comes from gitlog's "git log" text
// parsing instead; gitio exists only where go-git is a better fit than
// shelling out.
package gitio

import (
	"context"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	ccverrors "github.com/RyanGuild/ccver/internal/errors"
)

// Repo is a thin go-git handle over a repository working copy.
type Repo struct {
	repo     *git.Repository
	worktree *git.Worktree
}

// Open opens the git repository at path (or any directory beneath its
// root).
func Open(path string) (*Repo, error) {
	const op = "gitio.Open"

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, ccverrors.IOWrap(err, op, "failed to open git repository")
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, ccverrors.IOWrap(err, op, "failed to get worktree")
	}

	return &Repo{repo: repo, worktree: worktree}, nil
}

// IsClean reports whether the working tree has no staged or unstaged
// modifications. ci_check and Step E's dirty-HEAD build-metadata rule
// both depend on this.
func (r *Repo) IsClean(_ context.Context) (bool, error) {
	const op = "gitio.IsClean"

	status, err := r.worktree.Status()
	if err != nil {
		return false, ccverrors.IOWrap(err, op, "failed to get worktree status")
	}

	return status.IsClean(), nil
}

// HeadHash resolves HEAD to a full commit hash, for callers that invoke
// the engine with no explicit ref.
func (r *Repo) HeadHash(_ context.Context) (string, error) {
	const op = "gitio.HeadHash"

	head, err := r.repo.Head()
	if err != nil {
		return "", ccverrors.IOWrap(err, op, "failed to resolve HEAD")
	}

	return head.Hash().String(), nil
}

// CurrentBranch returns the short name of the branch HEAD points at. It
// fails with KindIO when HEAD is detached.
func (r *Repo) CurrentBranch(_ context.Context) (string, error) {
	const op = "gitio.CurrentBranch"

	head, err := r.repo.Head()
	if err != nil {
		return "", ccverrors.IOWrap(err, op, "failed to resolve HEAD")
	}
	if !head.Name().IsBranch() {
		return "", ccverrors.IO(op, "HEAD is not on a branch (detached HEAD)")
	}

	return head.Name().Short(), nil
}

// CreateTag creates an annotated tag named name at ref (HEAD if ref is
// empty) carrying message. It fails if the tag already exists.
func (r *Repo) CreateTag(_ context.Context, name, ref, message string) error {
	const op = "gitio.CreateTag"

	if ref == "" {
		ref = "HEAD"
	}

	hash, err := r.resolveRef(ref)
	if err != nil {
		return ccverrors.IOWrap(err, op, "failed to resolve ref "+ref)
	}

	_, err = r.repo.CreateTag(name, hash, &git.CreateTagOptions{
		Message: message,
		Tagger: &object.Signature{
			Name:  "ccver",
			Email: "ccver@localhost",
			When:  time.Now(),
		},
	})
	if err != nil {
		return ccverrors.IOWrap(err, op, "failed to create tag "+name)
	}

	return nil
}

// TagExists reports whether name already exists as a tag reference.
func (r *Repo) TagExists(_ context.Context, name string) (bool, error) {
	_, err := r.repo.Reference(plumbing.NewTagReferenceName(name), true)
	if err == nil {
		return true, nil
	}
	if err == plumbing.ErrReferenceNotFound {
		return false, nil
	}
	return false, ccverrors.IOWrap(err, "gitio.TagExists", "failed to look up tag "+name)
}

func (r *Repo) resolveRef(ref string) (plumbing.Hash, error) {
	if ref == "HEAD" {
		head, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return head.Hash(), nil
	}

	h, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return *h, nil
}
