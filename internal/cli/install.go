package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/RyanGuild/ccver/internal/fileutil"
)

const prePushHookScript = `#!/bin/sh
# Installed by "ccver install". Refuses to push if the working tree is
# dirty, so every pushed commit has a well-defined version.
exec ccver --ci
`

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a pre-push hook that runs ccver --ci",
	RunE:  runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	hookDir := filepath.Join(repoPath, ".git", "hooks")
	if _, err := os.Stat(hookDir); err != nil {
		return fmt.Errorf("not a git repository (missing %s): %w", hookDir, err)
	}

	hookPath := filepath.Join(hookDir, "pre-push")
	if err := fileutil.AtomicWriteFile(hookPath, []byte(prePushHookScript), 0o755); err != nil {
		return fmt.Errorf("failed to install pre-push hook: %w", err)
	}

	printSuccess("installed pre-push hook at " + hookPath)
	return nil
}
