package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ChrisRimondi/cvss-updater/internal"
	"github.com/spf13/cobra"
)

var (
	explainCmdJSON          bool
	explainCmdRegisterFlags = func(cmd *cobra.Command) {
		cmd.Flags().BoolVar(&explainCmdJSON, "json", false, "json")
	}
	explainCmd = &cobra.Command{
		Use:   "explain <vector>",
		Short: "Describe every metric value of a CVSS v3.x vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explanation, err := internal.Explain(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if explainCmdJSON {
				e := json.NewEncoder(out)
				e.SetIndent("", "    ")
				return e.Encode(explanation)
			}
			fmt.Fprintf(out, "%s\n", explanation.Vector)
			fmt.Fprintf(out, "Base score: %.1f (%s)\n\n", explanation.Score, explanation.Severity)
			for _, m := range explanation.Metrics {
				fmt.Fprintf(out, "%s (%s): %s (%s)\n", m.Name, m.Key, m.ValueName, m.Value)
				fmt.Fprintf(out, "    %s\n", m.ValueDescription)
			}
			return nil
		},
	}
)

func init() {
	explainCmdRegisterFlags(explainCmd)
}
