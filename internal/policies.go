package internal

import (
	"fmt"
	"strings"

	"github.com/ChrisRimondi/cvss-updater/internal/cvss"
	"gopkg.in/yaml.v3"
)

type PolicyMatcher interface {
	IsMatch(finding Finding) bool
}

func PolicyMatcherUnmarshalYAML(value *yaml.Node) (PolicyMatcher, error) {
	and := AndPolicyMatcher{}
	if err := and.UnmarshalYAML(value); err == nil {
		return &and, nil
	}

	or := OrPolicyMatcher{}
	if err := or.UnmarshalYAML(value); err == nil {
		return &or, nil
	}

	not := NotPolicyMatcher{}
	if err := not.UnmarshalYAML(value); err == nil {
		return &not, nil
	}

	id := IDPolicyMatcher{}
	if err := id.UnmarshalYAML(value); err == nil {
		return &id, nil
	}

	artifactNameShort := ArtifactNameShortPolicyMatcher{}
	if err := artifactNameShort.UnmarshalYAML(value); err == nil {
		return &artifactNameShort, nil
	}

	packageName := PackageNamePolicyMatcher{}
	if err := packageName.UnmarshalYAML(value); err == nil {
		return &packageName, nil
	}

	class := ClassPolicyMatcher{}
	if err := class.UnmarshalYAML(value); err == nil {
		return &class, nil
	}

	cvssMatcher := CVSSPolicyMatcher{}
	if err := cvssMatcher.UnmarshalYAML(value); err == nil {
		return &cvssMatcher, nil
	}

	str, err := yaml.Marshal(value)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("unable to unmarshall matcher `%s`", strings.ReplaceAll(strings.TrimSpace(string(str)), "\n", "\\n"))
}

func policyMatchersUnmarshalYAML(value *yaml.Node, key string) ([]PolicyMatcher, error) {
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 || value.Content[0].Value != key {
		return nil, fmt.Errorf("not a %s matcher", key)
	}
	list := value.Content[1]
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s matcher expects a list", key)
	}
	result := []PolicyMatcher{}
	for _, n := range list.Content {
		m, err := PolicyMatcherUnmarshalYAML(n)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

var _ PolicyMatcher = (*YesPolicyMatcher)(nil)

type YesPolicyMatcher struct{}

func (p *YesPolicyMatcher) IsMatch(finding Finding) bool {
	return true
}

var _ PolicyMatcher = (*NoPolicyMatcher)(nil)

type NoPolicyMatcher struct{}

func (p *NoPolicyMatcher) IsMatch(finding Finding) bool {
	return false
}

var _ PolicyMatcher = (*AndPolicyMatcher)(nil)

type AndPolicyMatcher struct {
	And []PolicyMatcher
}

func (p *AndPolicyMatcher) IsMatch(finding Finding) bool {
	for _, i := range p.And {
		if !i.IsMatch(finding) {
			return false
		}
	}
	return true
}

func (c *AndPolicyMatcher) UnmarshalYAML(value *yaml.Node) error {
	inner, err := policyMatchersUnmarshalYAML(value, "and")
	if err != nil {
		return err
	}
	c.And = inner
	return nil
}

var _ PolicyMatcher = (*OrPolicyMatcher)(nil)

type OrPolicyMatcher struct {
	Or []PolicyMatcher
}

func (p *OrPolicyMatcher) IsMatch(finding Finding) bool {
	for _, i := range p.Or {
		if i.IsMatch(finding) {
			return true
		}
	}
	return false
}

func (c *OrPolicyMatcher) UnmarshalYAML(value *yaml.Node) error {
	inner, err := policyMatchersUnmarshalYAML(value, "or")
	if err != nil {
		return err
	}
	c.Or = inner
	return nil
}

var _ PolicyMatcher = (*NotPolicyMatcher)(nil)

type NotPolicyMatcher struct {
	Not PolicyMatcher
}

func (p *NotPolicyMatcher) IsMatch(finding Finding) bool {
	return !p.Not.IsMatch(finding)
}

func (c *NotPolicyMatcher) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 || value.Content[0].Value != "not" {
		return fmt.Errorf("not a NotPolicyMatcher")
	}
	inner, err := PolicyMatcherUnmarshalYAML(value.Content[1])
	if err != nil {
		return err
	}
	c.Not = inner
	return nil
}

var _ PolicyMatcher = (*IDPolicyMatcher)(nil)

type IDPolicyMatcher struct {
	ID StringArray `yaml:"id"`
}

func (p *IDPolicyMatcher) IsMatch(finding Finding) bool {
	return StringsContain(p.ID, finding.ID)
}

func (c *IDPolicyMatcher) UnmarshalYAML(value *yaml.Node) error {
	type IDPolicyMatcher2 IDPolicyMatcher
	err := value.Decode((*IDPolicyMatcher2)(c))
	if err != nil {
		return err
	}
	if len(c.ID) == 0 {
		return fmt.Errorf("not a IDPolicyMatcher")
	}
	return nil
}

var _ PolicyMatcher = (*ArtifactNameShortPolicyMatcher)(nil)

type ArtifactNameShortPolicyMatcher struct {
	ArtifactNameShort StringArray `yaml:"artifactNameShort"`
}

func (p *ArtifactNameShortPolicyMatcher) IsMatch(finding Finding) bool {
	return StringsContain(p.ArtifactNameShort, finding.ArtifactNameShort())
}

func (c *ArtifactNameShortPolicyMatcher) UnmarshalYAML(value *yaml.Node) error {
	type ArtifactNameShortPolicyMatcher2 ArtifactNameShortPolicyMatcher
	err := value.Decode((*ArtifactNameShortPolicyMatcher2)(c))
	if err != nil {
		return err
	}
	if len(c.ArtifactNameShort) == 0 {
		return fmt.Errorf("not a ArtifactNameShortPolicyMatcher")
	}
	return nil
}

var _ PolicyMatcher = (*PackageNamePolicyMatcher)(nil)

type PackageNamePolicyMatcher struct {
	PackageName StringArray `yaml:"packageName"`
}

func (p *PackageNamePolicyMatcher) IsMatch(finding Finding) bool {
	return StringsContain(p.PackageName, finding.PkgName)
}

func (c *PackageNamePolicyMatcher) UnmarshalYAML(value *yaml.Node) error {
	type PackageNamePolicyMatcher2 PackageNamePolicyMatcher
	err := value.Decode((*PackageNamePolicyMatcher2)(c))
	if err != nil {
		return err
	}
	if len(c.PackageName) == 0 {
		return fmt.Errorf("not a PackageNamePolicyMatcher")
	}
	return nil
}

var _ PolicyMatcher = (*ClassPolicyMatcher)(nil)

type ClassPolicyMatcher struct {
	Class StringArray `yaml:"class"`
}

func (p *ClassPolicyMatcher) IsMatch(finding Finding) bool {
	return StringsContain(p.Class, finding.Class)
}

func (c *ClassPolicyMatcher) UnmarshalYAML(value *yaml.Node) error {
	type ClassPolicyMatcher2 ClassPolicyMatcher
	err := value.Decode((*ClassPolicyMatcher2)(c))
	if err != nil {
		return err
	}
	if len(c.Class) == 0 {
		return fmt.Errorf("not a ClassPolicyMatcher")
	}
	return nil
}

var _ PolicyMatcher = (*CVSSPolicyMatcher)(nil)

type CVSSPolicyMatcher struct {
	CVSS CVSSPolicyMatcherCVSS `yaml:"cvss"`
}

type CVSSPolicyMatcherCVSS struct {
	ScoreLowerThan float64     `yaml:"scoreLowerThan"`
	AV             StringArray `yaml:"av"`
	AC             StringArray `yaml:"ac"`
	PR             StringArray `yaml:"pr"`
	UI             StringArray `yaml:"ui"`
	S              StringArray `yaml:"s"`
	C              StringArray `yaml:"c"`
	I              StringArray `yaml:"i"`
	A              StringArray `yaml:"a"`
}

func (c CVSSPolicyMatcherCVSS) allowed(k cvss.Key) StringArray {
	switch k {
	case cvss.AttackVector:
		return c.AV
	case cvss.AttackComplexity:
		return c.AC
	case cvss.PrivilegesRequired:
		return c.PR
	case cvss.UserInteraction:
		return c.UI
	case cvss.Scope:
		return c.S
	case cvss.Confidentiality:
		return c.C
	case cvss.Integrity:
		return c.I
	case cvss.Availability:
		return c.A
	}
	return nil
}

func (p *CVSSPolicyMatcher) IsMatch(finding Finding) bool {
	metrics, err := cvss.Parse(finding.Vector)
	if err != nil {
		return false
	}
	if p.CVSS.ScoreLowerThan != 0 && cvss.BaseScore(metrics) >= p.CVSS.ScoreLowerThan {
		return false
	}
	for _, k := range cvss.Keys {
		allowed := p.CVSS.allowed(k)
		if len(allowed) > 0 && !StringsContain(allowed, string(metrics.Get(k))) {
			return false
		}
	}
	return true
}

func (c *CVSSPolicyMatcher) UnmarshalYAML(value *yaml.Node) error {
	type CVSSPolicyMatcher2 CVSSPolicyMatcher
	err := value.Decode((*CVSSPolicyMatcher2)(c))
	if err != nil {
		return err
	}
	empty := c.CVSS.ScoreLowerThan == 0
	for _, k := range cvss.Keys {
		if len(c.CVSS.allowed(k)) > 0 {
			empty = false
		}
	}
	if empty {
		return fmt.Errorf("not a CVSSPolicyMatcher")
	}
	return nil
}
