package gitlog

import (
	"bytes"
	"context"
	"os/exec"

	ccverrors "github.com/RyanGuild/ccver/internal/errors"
)

// LogFormat is the --format layout the commit graph builder's decoder is
// written against: hash, parent hashes, author ISO date, author name,
// author email, refs, subject, body, record-separated by 0x1e and
// field-separated by 0x1f.
const LogFormat = "%H%x1f%P%x1f%aI%x1f%an%x1f%ae%x1f%D%x1f%s%x1f%b%x1e"

// Runner abstracts the external `git log` invocation so the decoder can be
// tested against fixed byte streams without a real repository.
type Runner interface {
	// Run executes `git log --all --format=<LogFormat>` rooted at repoPath
	// and returns its raw stdout.
	Run(ctx context.Context, repoPath string) ([]byte, error)
}

// ExecRunner shells out to the system git binary.
type ExecRunner struct{}

// Run implements Runner using os/exec, buffering the entire stdout stream
// before returning, per the engine's single-blocking-call concurrency
// model.
func (ExecRunner) Run(ctx context.Context, repoPath string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", "log", "--all", "--format="+LogFormat) // #nosec G204 -- fixed argv, no user input
	cmd.Dir = repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, ccverrors.IOWrap(err, "gitlog.Run", "git log failed: "+stderr.String())
	}
	return stdout.Bytes(), nil
}
