package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/RyanGuild/ccver/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a .ccver.yaml config file",
	RunE:  runInitCmd,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	configFile := filepath.Join(repoPath, ".ccver.yaml")

	if _, err := os.Stat(configFile); err == nil && !initForce {
		printWarning(fmt.Sprintf("config file already exists: %s", configFile))
		fmt.Fprintln(cmd.OutOrStdout(), "use --force to overwrite")
		return nil
	}

	if err := config.WriteDefaultConfig(configFile); err != nil {
		return err
	}

	printSuccess("created " + configFile)
	fmt.Fprintln(cmd.OutOrStdout(), "review the tag_prefix, default_branch, and promotion_chain settings, then run \"ccver\" to print a version.")
	return nil
}
