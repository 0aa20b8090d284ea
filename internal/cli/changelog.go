package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanGuild/ccver/internal/engine"
)

var changeLogCmd = &cobra.Command{
	Use:     "change-log",
	Aliases: []string{"changelog"},
	Short:   "Print the Markdown changelog since the last released version",
	RunE:    runChangeLog,
}

func runChangeLog(cmd *cobra.Command, args []string) error {
	out, err := engine.NewWithLogger(logger).ChangeLog(cmd.Context(), repoPath, engineOptions())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
