package cvss

import (
	"sort"
	"strings"
)

const (
	VersionPrefix30 = "CVSS:3.0"
	VersionPrefix31 = "CVSS:3.1"
)

// Adjustments maps metric abbreviations (e.g. "AC") to replacement values.
// An empty value leaves the metric unchanged.
type Adjustments map[string]string

// Parse decodes a CVSS:3.0 or CVSS:3.1 Base vector. All eight Base metrics
// must be present exactly once; nothing is defaulted.
func Parse(vector string) (MetricSet, error) {
	m := MetricSet{}
	parts := strings.Split(strings.TrimSpace(vector), "/")
	if parts[0] != VersionPrefix30 && parts[0] != VersionPrefix31 {
		return m, &Error{Kind: ErrInvalidFormat, Token: parts[0]}
	}

	seen := [numKeys]bool{}
	for _, token := range parts[1:] {
		name, value, ok := strings.Cut(token, ":")
		if !ok {
			return m, &Error{Kind: ErrInvalidFormat, Token: token}
		}
		k, ok := ParseKey(name)
		if !ok || seen[k] || !k.Allows(Value(value)) {
			return m, &Error{Kind: ErrInvalidFormat, Token: token}
		}
		seen[k] = true
		m[k] = Value(value)
	}

	missing := []Key{}
	for _, k := range Keys {
		if !seen[k] {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return MetricSet{}, &Error{Kind: ErrIncompleteVector, Missing: missing}
	}
	return m, nil
}

// Merge overlays adjustments onto the base vector and returns the result in
// canonical CVSS:3.1 form. Values are written first and checked against
// their domains only once every adjustment has been applied.
func Merge(base string, adjustments Adjustments) (string, error) {
	m, err := Parse(base)
	if err != nil {
		return "", err
	}

	unknown := []string{}
	for name, value := range adjustments {
		if value == "" {
			continue
		}
		k, ok := ParseKey(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		m[k] = Value(value)
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return "", &Error{Kind: ErrInvalidAdjustment, Key: unknown[0], Value: adjustments[unknown[0]]}
	}
	for _, k := range Keys {
		if !k.Allows(m[k]) {
			return "", &Error{Kind: ErrInvalidAdjustment, Key: k.String(), Value: string(m[k])}
		}
	}
	return m.String(), nil
}
