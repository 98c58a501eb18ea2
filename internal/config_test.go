package internal

import (
	"os"
	"testing"

	"github.com/ChrisRimondi/cvss-updater/internal/cvss"
	"github.com/aquasecurity/trivy-db/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	resetGithubToken := temporarySetenv("GITHUB_TOKEN", "token")
	defer resetGithubToken()

	bytes, err := os.ReadFile("./config_test.yaml")
	assert.NoError(t, err)

	c1, err := LoadConfig(bytes)
	if assert.NoError(t, err) {
		c2 := &Config{
			CVERepoPath: "cves",
			OutputDir:   "out",
			CVSSSources: []types.SourceID{"redhat", "nvd"},
			Github: &ConfigGithub{
				Token:          "token",
				IssueRepoOwner: "owner",
				IssueRepoName:  "repo",
				LabelPrefix:    "cvss:",
			},
			Policies: []ConfigPolicy{
				{
					Comment: "Comment 1\n",
					Match: &ArtifactNameShortPolicyMatcher{
						ArtifactNameShort: []string{"debian"},
					},
					Adjust: cvss.Adjustments{"AV": "A"},
				},
				{
					Match: &PackageNamePolicyMatcher{
						PackageName: []string{"sh", "bash"},
					},
					Adjust: cvss.Adjustments{"PR": "H"},
				},
				{
					Match: &ClassPolicyMatcher{
						Class: []string{"os-pkgs"},
					},
					Adjust: cvss.Adjustments{"UI": "R"},
				},
				{
					Match: &CVSSPolicyMatcher{
						CVSS: CVSSPolicyMatcherCVSS{
							AV: []string{"N", "L"},
							AC: []string{"H"},
							PR: []string{"H"},
							UI: []string{"N"},
							S:  []string{"C"},
							C:  []string{"H"},
							I:  []string{"H"},
							A:  []string{"H"},
						},
					},
					Adjust: cvss.Adjustments{"A": "N"},
				},
				{
					Match: &NotPolicyMatcher{
						Not: &IDPolicyMatcher{
							ID: []string{"CVE-1"},
						},
					},
					Adjust: cvss.Adjustments{"C": "L"},
				},
				{
					Match: &AndPolicyMatcher{
						And: []PolicyMatcher{
							&IDPolicyMatcher{
								ID: []string{"CVE-2"},
							},
							&IDPolicyMatcher{
								ID: []string{"CVE-3"},
							},
						},
					},
					Adjust: cvss.Adjustments{"I": "L"},
				},
				{
					Match: &OrPolicyMatcher{
						Or: []PolicyMatcher{
							&IDPolicyMatcher{
								ID: []string{"CVE-4"},
							},
							&IDPolicyMatcher{
								ID: []string{"CVE-5"},
							},
						},
					},
					Adjust: cvss.Adjustments{"S": "U"},
				},
				{
					Comment: "Comment 2",
					Match:   &YesPolicyMatcher{},
					Adjust:  cvss.Adjustments{"AC": "H", "A": ""},
				},
			},
		}
		assert.Equal(t, c2, c1)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	c, err := LoadConfig([]byte("outputDir: elsewhere\n"))
	if assert.NoError(t, err) {
		assert.Equal(t, "cvelistV5/cves", c.CVERepoPath)
		assert.Equal(t, "elsewhere", c.OutputDir)
		assert.Equal(t, defaultCVSSSources, c.CVSSSources)
		assert.Nil(t, c.Github)
		assert.Empty(t, c.Policies)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"NoAdjustments", "policies:\n  - match:\n      id: CVE-1\n"},
		{"UnknownMetric", "policies:\n  - adjust:\n      XX: H\n"},
		{"InvalidValue", "policies:\n  - adjust:\n      AV: X\n"},
		{"UnknownMatcher", "policies:\n  - match:\n      foo: bar\n    adjust:\n      AV: L\n"},
		{"InvalidIssueRepo", "github:\n  issueRepo: invalid\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}
