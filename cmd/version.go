package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type FullVersion struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

var (
	Version    = FullVersion{Version: "dev"}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Version.Version)
			if Version.Commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", Version.Commit)
			}
			if Version.Date != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "built at: %s\n", Version.Date)
			}
			if Version.BuiltBy != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "built by: %s\n", Version.BuiltBy)
			}
		},
	}
)
