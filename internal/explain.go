package internal

import (
	"github.com/ChrisRimondi/cvss-updater/internal/cvss"
)

type ExplainedMetric struct {
	Key              string `json:"key"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Value            string `json:"value"`
	ValueName        string `json:"valueName"`
	ValueDescription string `json:"valueDescription"`
}

type Explanation struct {
	Vector   string            `json:"vector"`
	Score    float64           `json:"score"`
	Severity cvss.Severity     `json:"severity"`
	Metrics  []ExplainedMetric `json:"metrics"`
}

// Explain scores vector and describes each of its metric values.
func Explain(vector string) (*Explanation, error) {
	m, err := cvss.Parse(vector)
	if err != nil {
		return nil, err
	}
	score := cvss.BaseScore(m)
	result := Explanation{
		Vector:   m.String(),
		Score:    score,
		Severity: cvss.RenderSeverity(score),
		Metrics:  []ExplainedMetric{},
	}
	for _, k := range cvss.Keys {
		v := m.Get(k)
		result.Metrics = append(result.Metrics, ExplainedMetric{
			Key:              k.String(),
			Name:             k.Name(),
			Description:      k.Description(),
			Value:            string(v),
			ValueName:        k.ValueName(v),
			ValueDescription: k.ValueDescription(v),
		})
	}
	return &result, nil
}

type MetricDefinition struct {
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Values      []ExplainedMetric `json:"values"`
}

func DescribeMetric(k cvss.Key) MetricDefinition {
	result := MetricDefinition{
		Key:         k.String(),
		Name:        k.Name(),
		Description: k.Description(),
		Values:      []ExplainedMetric{},
	}
	for _, v := range k.Domain() {
		result.Values = append(result.Values, ExplainedMetric{
			Key:              k.String(),
			Name:             k.Name(),
			Value:            string(v),
			ValueName:        k.ValueName(v),
			ValueDescription: k.ValueDescription(v),
		})
	}
	return result
}
