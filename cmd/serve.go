package cmd

import (
	"github.com/ChrisRimondi/cvss-updater/internal"
	"github.com/spf13/cobra"
)

var (
	serveCmdListen        string
	serveCmdRegisterFlags = func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&serveCmdListen, "listen", ":8080", "listen address")
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the score, adjust and explain operations as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := internal.NewLogger(rootCmdVerbose)
			server := internal.NewServer(logger)
			return server.ListenAndServe(cmd.Context(), serveCmdListen)
		},
	}
)

func init() {
	serveCmdRegisterFlags(serveCmd)
}
