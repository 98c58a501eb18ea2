package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ChrisRimondi/cvss-updater/internal/cvss"
)

type AdjustmentRecord struct {
	Identifier     string  `json:"CVE"`
	Asset          string  `json:"Asset,omitempty"`
	OriginalVector string  `json:"Original CVSS Vector"`
	OriginalScore  float64 `json:"Original Base Score"`
	AdjustedScore  float64 `json:"Adjusted Base Score"`
	AdjustedVector string  `json:"Adjusted CVSS Vector"`
	Rationale      string  `json:"Rationale"`
}

func (r AdjustmentRecord) Key() string {
	if r.Asset == "" {
		return r.Identifier
	}
	return r.Asset + "/" + r.Identifier
}

func (r AdjustmentRecord) OriginalSeverity() cvss.Severity {
	return cvss.RenderSeverity(r.OriginalScore)
}

func (r AdjustmentRecord) AdjustedSeverity() cvss.Severity {
	return cvss.RenderSeverity(r.AdjustedScore)
}

// Adjust scores baseVector, overlays adjustments and scores the result.
func Adjust(identifier string, asset string, baseVector string, adjustments cvss.Adjustments, rationale string) (*AdjustmentRecord, error) {
	original, err := cvss.Parse(baseVector)
	if err != nil {
		return nil, fmt.Errorf("unable to parse vector of %s: %w", identifier, err)
	}
	adjustedVector, err := cvss.Merge(baseVector, adjustments)
	if err != nil {
		return nil, fmt.Errorf("unable to adjust vector of %s: %w", identifier, err)
	}
	adjusted, err := cvss.Parse(adjustedVector)
	if err != nil {
		return nil, fmt.Errorf("unable to parse adjusted vector of %s: %w", identifier, err)
	}
	return &AdjustmentRecord{
		Identifier:     identifier,
		Asset:          asset,
		OriginalVector: original.String(),
		OriginalScore:  cvss.BaseScore(original),
		AdjustedScore:  cvss.BaseScore(adjusted),
		AdjustedVector: adjustedVector,
		Rationale:      rationale,
	}, nil
}

// ParseAdjustments reads KEY=VALUE pairs. Keys and values are checked later by
// cvss.Merge.
func ParseAdjustments(pairs []string) (cvss.Adjustments, error) {
	result := cvss.Adjustments{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("adjustment %q is not of the form KEY=VALUE", p)
		}
		result[k] = strings.TrimSpace(v)
	}
	return result, nil
}

// Suggestion is the structured answer of a text-generation service asked to
// propose an adjusted vector.
type Suggestion struct {
	AdjustedVector string `json:"adjusted_vector"`
	Explanation    string `json:"explanation"`
}

func ParseSuggestion(raw []byte) (*Suggestion, error) {
	trimmed := strings.TrimSpace(string(raw))
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")

	d := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	d.DisallowUnknownFields()
	s := Suggestion{}
	if err := d.Decode(&s); err != nil {
		return nil, fmt.Errorf("unable to parse suggestion: %w", err)
	}
	if d.More() {
		return nil, fmt.Errorf("unable to parse suggestion: trailing data")
	}
	if s.AdjustedVector == "" {
		return nil, fmt.Errorf("suggestion lacks adjusted_vector")
	}
	if s.Explanation == "" {
		return nil, fmt.Errorf("suggestion lacks explanation")
	}
	return &s, nil
}

// Adjustments returns the metrics the suggestion changes relative to baseVector.
func (s Suggestion) Adjustments(baseVector string) (cvss.Adjustments, error) {
	base, err := cvss.Parse(baseVector)
	if err != nil {
		return nil, err
	}
	suggested, err := cvss.Parse(s.AdjustedVector)
	if err != nil {
		return nil, fmt.Errorf("suggested vector is unusable: %w", err)
	}
	return cvss.Diff(base, suggested), nil
}
