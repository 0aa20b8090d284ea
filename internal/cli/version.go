package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanGuild/ccver/internal/engine"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of the current HEAD (or --ref)",
	RunE:  runVersion,
}

var refFlag string

func init() {
	versionCmd.Flags().StringVar(&refFlag, "ref", "", "compute the version of this full commit hash instead of HEAD (branch and tag names are not resolved)")
}

func runVersion(cmd *cobra.Command, args []string) error {
	e := engine.NewWithLogger(logger)

	if ciMode {
		if err := e.CICheck(cmd.Context(), repoPath); err != nil {
			return err
		}
	}

	opts := engineOptions()
	opts.Ref = refFlag

	v, err := e.Version(cmd.Context(), repoPath, opts)
	if err != nil {
		return err
	}

	if cfg.Output.JSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(struct {
			Version string `json:"version"`
		}{Version: v})
	}

	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}
