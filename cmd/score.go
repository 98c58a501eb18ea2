package cmd

import (
	"fmt"

	"github.com/ChrisRimondi/cvss-updater/internal/cvss"
	"github.com/spf13/cobra"
)

var (
	scoreCmd = &cobra.Command{
		Use:   "score <vector>",
		Short: "Compute the base score of a CVSS v3.x vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cvss.Parse(args[0])
			if err != nil {
				return err
			}
			score := cvss.BaseScore(m)
			fmt.Fprintf(cmd.OutOrStdout(), "%.1f %s %s\n", score, cvss.RenderSeverity(score), m.String())
			return nil
		},
	}
)
