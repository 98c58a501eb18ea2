package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	trivydbtypes "github.com/aquasecurity/trivy-db/pkg/types"
	"github.com/aquasecurity/trivy/pkg/types"
)

const TrivyBin = "trivy"

var defaultCVSSSources = []trivydbtypes.SourceID{"nvd", "redhat"}

func TrivyImage(ctx context.Context, dir string, image string) (*types.Report, error) {
	out, err := trivyCmd(ctx, dir, "image", "--security-checks", "vuln", "--format", "json", image)
	if err != nil {
		return nil, err
	}
	return decodeTrivyReport(out)
}

func LoadTrivyReport(file string) (*types.Report, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read trivy report %s: %w", file, err)
	}
	return decodeTrivyReport(bytes)
}

func decodeTrivyReport(bytes []byte) (*types.Report, error) {
	report := types.Report{}
	if err := json.Unmarshal(bytes, &report); err != nil {
		return nil, fmt.Errorf("unable to parse trivy report: %w", err)
	}
	return &report, nil
}

func trivyCmd(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, TrivyBin, args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("trivy command %s failed: %w\n%s", strings.Join(args, " "), err, output)
	}
	return output, nil
}

// FindVulnerabilityCVSSV3 returns the v3 vector and score of the first
// source in sources that has a vector.
func FindVulnerabilityCVSSV3(vuln types.DetectedVulnerability, sources []trivydbtypes.SourceID) (string, float64) {
	if len(sources) == 0 {
		sources = defaultCVSSSources
	}
	for _, s := range sources {
		if c, ok := vuln.CVSS[s]; ok && c.V3Vector != "" {
			return c.V3Vector, c.V3Score
		}
	}
	return "", 0
}

func FindingsFromReport(report types.Report, sources []trivydbtypes.SourceID) []Finding {
	result := []Finding{}
	for _, res := range report.Results {
		for _, vuln := range res.Vulnerabilities {
			vector, score := FindVulnerabilityCVSSV3(vuln, sources)
			result = append(result, Finding{
				ID:           vuln.VulnerabilityID,
				Title:        vuln.Title,
				Description:  vuln.Description,
				ArtifactName: report.ArtifactName,
				PkgName:      vuln.PkgName,
				Class:        string(res.Class),
				Vector:       vector,
				Score:        score,
			})
		}
	}
	return result
}
