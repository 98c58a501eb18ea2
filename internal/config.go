package internal

import (
	"fmt"
	"strings"

	"github.com/ChrisRimondi/cvss-updater/internal/cvss"
	"github.com/airfocusio/go-expandenv"
	"github.com/aquasecurity/trivy-db/pkg/types"
	"gopkg.in/yaml.v3"
)

const ConfigFileName = ".cvss-updater.yaml"

type Config struct {
	CVERepoPath string
	OutputDir   string
	Github      *ConfigGithub
	Policies    []ConfigPolicy
	CVSSSources []types.SourceID
}

func DefaultConfig() Config {
	return Config{
		CVERepoPath: "cvelistV5/cves",
		OutputDir:   "adjusted_cves",
		CVSSSources: defaultCVSSSources,
	}
}

type ConfigPolicy struct {
	Comment string
	Match   PolicyMatcher
	Adjust  cvss.Adjustments
}

func (c *ConfigPolicy) UnmarshalYAML(value *yaml.Node) error {
	type rawConfigPolicy struct {
		Comment string            `yaml:"comment"`
		Match   yaml.Node         `yaml:"match"`
		Adjust  map[string]string `yaml:"adjust"`
	}
	raw := rawConfigPolicy{}
	err := value.Decode(&raw)
	if err != nil {
		return err
	}

	if raw.Match.Kind == 0 {
		c.Match = &YesPolicyMatcher{}
	} else {
		match, err := PolicyMatcherUnmarshalYAML(&raw.Match)
		if err != nil {
			return err
		}
		c.Match = match
	}
	if len(raw.Adjust) == 0 {
		return fmt.Errorf("policy %q has no adjustments", raw.Comment)
	}
	for name, v := range raw.Adjust {
		k, ok := cvss.ParseKey(name)
		if !ok {
			return fmt.Errorf("policy %q adjusts unknown metric %s", raw.Comment, name)
		}
		if v != "" && !k.Allows(cvss.Value(v)) {
			return fmt.Errorf("policy %q adjusts %s to invalid value %q", raw.Comment, name, v)
		}
	}
	c.Comment = raw.Comment
	c.Adjust = raw.Adjust
	return nil
}

func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type rawConfig struct {
		CVERepoPath string         `yaml:"cveRepoPath"`
		OutputDir   string         `yaml:"outputDir"`
		Github      *ConfigGithub  `yaml:"github"`
		Policies    []ConfigPolicy `yaml:"policies"`
		CVSSSources []string       `yaml:"cvssSources"`
	}
	raw := rawConfig{}
	err := value.Decode((*rawConfig)(&raw))
	if err != nil {
		return err
	}

	if raw.CVERepoPath != "" {
		c.CVERepoPath = raw.CVERepoPath
	}
	if raw.OutputDir != "" {
		c.OutputDir = raw.OutputDir
	}
	c.Github = raw.Github
	c.Policies = raw.Policies
	if len(raw.CVSSSources) > 0 {
		cvssSources := []types.SourceID{}
		for _, p := range raw.CVSSSources {
			cvssSources = append(cvssSources, types.SourceID(p))
		}
		c.CVSSSources = cvssSources
	}
	return nil
}

type ConfigGithub struct {
	Token          string
	IssueRepoOwner string
	IssueRepoName  string
	LabelPrefix    string
}

func (c *ConfigGithub) UnmarshalYAML(value *yaml.Node) error {
	type rawConfigGithub struct {
		Token       string `yaml:"token"`
		IssueRepo   string `yaml:"issueRepo"`
		LabelPrefix string `yaml:"labelPrefix"`
	}
	raw := rawConfigGithub{}
	err := value.Decode((*rawConfigGithub)(&raw))
	if err != nil {
		return err
	}

	c.Token = raw.Token
	githubIssueRepoSegments := strings.SplitN(raw.IssueRepo, "/", 2)
	if len(githubIssueRepoSegments) != 2 {
		return fmt.Errorf("github issue repo is invalid")
	}
	c.IssueRepoOwner = githubIssueRepoSegments[0]
	c.IssueRepoName = githubIssueRepoSegments[1]
	c.LabelPrefix = raw.LabelPrefix
	return nil
}

func LoadConfig(bytesRaw []byte) (*Config, error) {
	var expansionTemp interface{}
	err := yaml.Unmarshal(bytesRaw, &expansionTemp)
	if err != nil {
		return nil, err
	}
	expansionTemp, err = expandenv.ExpandEnv(expansionTemp)
	if err != nil {
		return nil, err
	}
	bytes, err := yaml.Marshal(expansionTemp)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	err = yaml.Unmarshal(bytes, &config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}
