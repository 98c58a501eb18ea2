// Package cvss parses, merges and scores CVSS v3.1 Base vectors.
package cvss

// https://www.first.org/cvss/v3.1/specification-document

type Key int

const (
	AttackVector Key = iota
	AttackComplexity
	PrivilegesRequired
	UserInteraction
	Scope
	Confidentiality
	Integrity
	Availability
	numKeys
)

// Keys lists every Base metric in canonical serialization order.
var Keys = [numKeys]Key{
	AttackVector,
	AttackComplexity,
	PrivilegesRequired,
	UserInteraction,
	Scope,
	Confidentiality,
	Integrity,
	Availability,
}

var keyAbbreviations = [numKeys]string{"AV", "AC", "PR", "UI", "S", "C", "I", "A"}

var keyDomains = [numKeys][]Value{
	{"N", "A", "L", "P"}, // AV
	{"L", "H"},           // AC
	{"N", "L", "H"},      // PR
	{"N", "R"},           // UI
	{"U", "C"},           // S
	{"N", "L", "H"},      // C
	{"N", "L", "H"},      // I
	{"N", "L", "H"},      // A
}

func ParseKey(s string) (Key, bool) {
	for _, k := range Keys {
		if keyAbbreviations[k] == s {
			return k, true
		}
	}
	return 0, false
}

func (k Key) String() string {
	if k < 0 || k >= numKeys {
		return "?"
	}
	return keyAbbreviations[k]
}

// Domain returns a copy of the values allowed for k.
func (k Key) Domain() []Value {
	if k < 0 || k >= numKeys {
		return nil
	}
	return append([]Value{}, keyDomains[k]...)
}

func (k Key) Allows(v Value) bool {
	if k < 0 || k >= numKeys {
		return false
	}
	for _, d := range keyDomains[k] {
		if d == v {
			return true
		}
	}
	return false
}

type Value string

// MetricSet holds one value per Base metric, indexed by Key. It is a plain
// array so it can be copied and compared with ==.
type MetricSet [numKeys]Value

func (m MetricSet) Get(k Key) Value {
	return m[k]
}

// With returns a copy of m with k set to v. The result is not validated.
func (m MetricSet) With(k Key, v Value) MetricSet {
	m[k] = v
	return m
}

func (m MetricSet) ScopeChanged() bool {
	return m[Scope] == "C"
}

// Validate reports the first metric whose value is outside its domain.
func (m MetricSet) Validate() error {
	missing := []Key{}
	for _, k := range Keys {
		if m[k] == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &Error{Kind: ErrIncompleteVector, Missing: missing}
	}
	for _, k := range Keys {
		if !k.Allows(m[k]) {
			return &Error{Kind: ErrInvalidFormat, Token: k.String() + ":" + string(m[k])}
		}
	}
	return nil
}

// String serializes m in canonical CVSS:3.1 form.
func (m MetricSet) String() string {
	b := make([]byte, 0, 44)
	b = append(b, VersionPrefix31...)
	for _, k := range Keys {
		b = append(b, '/')
		b = append(b, keyAbbreviations[k]...)
		b = append(b, ':')
		b = append(b, m[k]...)
	}
	return string(b)
}

// Diff returns the adjustments that turn from into to.
func Diff(from MetricSet, to MetricSet) Adjustments {
	result := Adjustments{}
	for _, k := range Keys {
		if from[k] != to[k] {
			result[k.String()] = string(to[k])
		}
	}
	return result
}
