package cmd

import (
	"fmt"

	"github.com/ChrisRimondi/cvss-updater/internal"
	"github.com/spf13/cobra"
)

var (
	rescoreCmdReports       []string
	rescoreCmdImages        []string
	rescoreCmdCVEs          []string
	rescoreCmdDry           bool
	rescoreCmdRegisterFlags = func(cmd *cobra.Command) {
		cmd.Flags().StringArrayVar(&rescoreCmdReports, "report", nil, "trivy json report, repeatable")
		cmd.Flags().StringArrayVar(&rescoreCmdImages, "image", nil, "image to scan with trivy, repeatable")
		cmd.Flags().StringArrayVar(&rescoreCmdCVEs, "cve", nil, "cve id to look up in the cve repository, repeatable")
		cmd.Flags().BoolVar(&rescoreCmdDry, "dry", false, "dry")
	}
	rescoreCmd = &cobra.Command{
		Use:   "rescore",
		Short: "Apply the configured policies to trivy findings or CVE records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(rescoreCmdReports) == 0 && len(rescoreCmdImages) == 0 && len(rescoreCmdCVEs) == 0 {
				return fmt.Errorf("nothing to rescore, use --report, --image or --cve")
			}
			config, err := loadConfig()
			if err != nil {
				return err
			}
			if len(config.Policies) == 0 {
				return fmt.Errorf("no policies configured")
			}
			ctx := cmd.Context()
			logger := internal.NewLogger(rootCmdVerbose)
			internal.InitMetrics()

			findings := []internal.Finding{}
			for _, file := range rescoreCmdReports {
				report, err := internal.LoadTrivyReport(internal.FileResolvePath(rootCmdDirectory, file))
				if err != nil {
					return err
				}
				findings = append(findings, internal.FindingsFromReport(*report, config.CVSSSources)...)
			}
			for _, image := range rescoreCmdImages {
				logger.Info.Printf("Scanning artifact %s ...\n", image)
				report, err := internal.TrivyImage(ctx, rootCmdDirectory, image)
				if err != nil {
					return err
				}
				findings = append(findings, internal.FindingsFromReport(*report, config.CVSSSources)...)
			}
			for _, id := range rescoreCmdCVEs {
				record, err := internal.LookupCVE(config.CVERepoPath, id)
				if err != nil {
					return err
				}
				findings = append(findings, record.Finding())
			}

			rescore := internal.NewRescore(logger, *config, newStores(ctx, logger, *config), rescoreCmdDry)
			records, err := rescore.ProcessFindings(ctx, findings)
			if err != nil {
				return err
			}
			logger.Info.Printf("Adjusted %d of %d findings\n", len(records), len(findings))
			return nil
		},
	}
)

func init() {
	rescoreCmdRegisterFlags(rescoreCmd)
}
