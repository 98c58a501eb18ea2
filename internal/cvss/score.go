package cvss

import (
	"math"
)

var weights = [numKeys]map[Value]float64{
	{"N": 0.85, "A": 0.62, "L": 0.55, "P": 0.2}, // AV
	{"L": 0.77, "H": 0.44},                      // AC
	{"N": 0.85, "L": 0.62, "H": 0.27},           // PR, scope unchanged
	{"N": 0.85, "R": 0.62},                      // UI
	{"U": 0, "C": 0},                            // S
	{"N": 0, "L": 0.22, "H": 0.56},              // C
	{"N": 0, "L": 0.22, "H": 0.56},              // I
	{"N": 0, "L": 0.22, "H": 0.56},              // A
}

var privilegesRequiredScopeChanged = map[Value]float64{"N": 0.85, "L": 0.68, "H": 0.5}

// BaseScore computes the CVSS v3.1 Base Score. m must already be valid.
func BaseScore(m MetricSet) float64 {
	changed := m.ScopeChanged()

	w := func(k Key) float64 {
		if k == PrivilegesRequired && changed {
			return privilegesRequiredScopeChanged[m[k]]
		}
		return weights[k][m[k]]
	}

	iss := 1 - (1-w(Confidentiality))*(1-w(Integrity))*(1-w(Availability))
	var impact float64
	if changed {
		impact = 7.52*(iss-0.029) - 3.25*math.Pow(iss-0.02, 15)
	} else {
		impact = 6.42 * iss
	}
	exploitability := 8.22 * w(AttackVector) * w(AttackComplexity) * w(PrivilegesRequired) * w(UserInteraction)

	if impact <= 0 {
		return 0
	}
	if changed {
		return roundup(math.Min(1.08*(impact+exploitability), 10))
	}
	return roundup(math.Min(impact+exploitability, 10))
}

// roundup returns the smallest one-decimal number >= x. Rounding x*100000
// to an integer first absorbs float noise such as 4.000000000000001.
func roundup(x float64) float64 {
	i := int64(math.Round(x * 100000))
	if i%10000 == 0 {
		return float64(i) / 100000
	}
	return float64(i/10000+1) / 10
}

type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func RenderSeverity(score float64) Severity {
	if score >= 9 {
		return SeverityCritical
	} else if score >= 7 {
		return SeverityHigh
	} else if score >= 4 {
		return SeverityMedium
	} else if score > 0 {
		return SeverityLow
	} else {
		return SeverityNone
	}
}
