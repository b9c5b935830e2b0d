package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information, overridden with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if JSON() {
			return PrintJSON(cmd, buildInfo{Version: Version, Commit: Commit, BuildDate: BuildDate})
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "tempo %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
