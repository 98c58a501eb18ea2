package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ChrisRimondi/cvss-updater/internal"
	"github.com/ChrisRimondi/cvss-updater/internal/cvss"
	"github.com/spf13/cobra"
)

var (
	adjustCmdSet           []string
	adjustCmdRationale     string
	adjustCmdSuggestion    string
	adjustCmdAsset         string
	adjustCmdVector        string
	adjustCmdDry           bool
	adjustCmdRegisterFlags = func(cmd *cobra.Command) {
		cmd.Flags().StringArrayVar(&adjustCmdSet, "set", nil, "metric adjustment KEY=VALUE, repeatable")
		cmd.Flags().StringVar(&adjustCmdRationale, "rationale", "", "rationale")
		cmd.Flags().StringVar(&adjustCmdSuggestion, "suggestion", "", "file with a suggested adjusted vector as JSON")
		cmd.Flags().StringVar(&adjustCmdAsset, "asset", "", "asset")
		cmd.Flags().StringVar(&adjustCmdVector, "vector", "", "base vector, instead of looking up the CVE")
		cmd.Flags().BoolVar(&adjustCmdDry, "dry", false, "dry")
	}
	adjustCmd = &cobra.Command{
		Use:   "adjust <cve-id>",
		Short: "Apply metric adjustments to the base vector of a CVE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			config, err := loadConfig()
			if err != nil {
				return err
			}
			logger := internal.NewLogger(rootCmdVerbose)

			baseVector := adjustCmdVector
			if baseVector == "" {
				record, err := internal.LookupCVE(config.CVERepoPath, id)
				if err != nil {
					return err
				}
				logger.Debug.Printf("Found %s: %s (%.1f)\n", record.ID, record.Vector, record.BaseScore)
				baseVector = record.Vector
			}

			adjustments := cvss.Adjustments{}
			rationale := adjustCmdRationale
			if adjustCmdSuggestion != "" {
				raw, err := os.ReadFile(internal.FileResolvePath(rootCmdDirectory, adjustCmdSuggestion))
				if err != nil {
					return fmt.Errorf("unable to read suggestion: %w", err)
				}
				suggestion, err := internal.ParseSuggestion(raw)
				if err != nil {
					return err
				}
				adjustments, err = suggestion.Adjustments(baseVector)
				if err != nil {
					return err
				}
				if rationale == "" {
					rationale = suggestion.Explanation
				}
			}
			set, err := internal.ParseAdjustments(adjustCmdSet)
			if err != nil {
				return err
			}
			for k, v := range set {
				adjustments[k] = v
			}

			record, err := internal.Adjust(id, adjustCmdAsset, baseVector, adjustments, rationale)
			if err != nil {
				return err
			}
			logger.Info.Printf("Adjusted %s %.1f -> %.1f\n", id, record.OriginalScore, record.AdjustedScore)

			if adjustCmdDry {
				logger.Info.Printf("Skipped saving %s [dry run]\n", id)
			} else {
				for _, s := range newStores(cmd.Context(), logger, *config) {
					location, err := s.Save(cmd.Context(), *record)
					if err != nil {
						return fmt.Errorf("unable to save adjustment of %s: %w", id, err)
					}
					logger.CloneNested().Info.Printf("Saved: %s\n", location)
				}
			}

			e := json.NewEncoder(cmd.OutOrStdout())
			e.SetIndent("", "    ")
			return e.Encode(record)
		},
	}
)

func init() {
	adjustCmdRegisterFlags(adjustCmd)
}
