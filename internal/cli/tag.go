package cli

import (
	"github.com/spf13/cobra"

	"github.com/RyanGuild/ccver/internal/engine"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Create an annotated tag at HEAD for its computed version",
	RunE:  runTag,
}

func runTag(cmd *cobra.Command, args []string) error {
	opts := engineOptions()
	// A release tag always carries the full computed version, even
	// when --no-pre was passed for display elsewhere.
	opts.NoPre = false

	name, err := engine.NewWithLogger(logger).Tag(cmd.Context(), repoPath, opts)
	if err != nil {
		printError(err.Error())
		return err
	}

	printSuccess("created tag " + name)
	return nil
}
