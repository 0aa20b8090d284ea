package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanGuild/ccver/internal/engine"
)

var peekMessage string

var peekCmd = &cobra.Command{
	Use:   "peek",
	Short: "Print the version a new commit would receive, without committing it",
	Long: `peek computes the version a commit with --message as its subject would
get if it were committed on top of HEAD right now. It does not create a
commit, move a branch, or otherwise touch the repository.`,
	RunE: runPeek,
}

func init() {
	peekCmd.Flags().StringVarP(&peekMessage, "message", "m", "", "subject line of the hypothetical commit (required)")
	peekCmd.MarkFlagRequired("message")
}

func runPeek(cmd *cobra.Command, args []string) error {
	v, err := engine.NewWithLogger(logger).Peek(cmd.Context(), repoPath, peekMessage, engineOptions())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}
