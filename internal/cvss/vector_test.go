package cvss

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func allMetricSets() []MetricSet {
	result := []MetricSet{{}}
	for _, k := range Keys {
		next := []MetricSet{}
		for _, m := range result {
			for _, v := range k.Domain() {
				next = append(next, m.With(k, v))
			}
		}
		result = next
	}
	return result
}

func TestParse(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		m, err := Parse("CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H")
		if assert.NoError(t, err) {
			assert.Equal(t, MetricSet{"N", "L", "N", "R", "U", "H", "H", "H"}, m)
		}
	})

	t.Run("Version30", func(t *testing.T) {
		m, err := Parse("CVSS:3.0/AV:L/AC:H/PR:H/UI:N/S:C/C:N/I:L/A:N")
		if assert.NoError(t, err) {
			assert.Equal(t, MetricSet{"L", "H", "H", "N", "C", "N", "L", "N"}, m)
		}
	})

	t.Run("OrderIndependent", func(t *testing.T) {
		m1, err1 := Parse("CVSS:3.1/A:H/I:H/C:H/S:U/UI:R/PR:N/AC:L/AV:N")
		m2, err2 := Parse("CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H")
		if assert.NoError(t, err1) && assert.NoError(t, err2) {
			assert.Equal(t, m2, m1)
		}
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		cases := map[string]string{
			"":  "",
			"AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H":                     "AV:N",
			"CVSS:2.0/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H":            "CVSS:2.0",
			"CVSS:3.1/AV:X/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H":            "AV:X",
			"CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H/AV:N":       "AV:N",
			"CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H/E:F":        "E:F",
			"CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A":              "A",
			"CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H/":           "",
			"CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:M":            "A:M",
			"CVSS:3.1/AV:n/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H":            "AV:n",
			"CVSS:3.1/AV:N:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H":          "AV:N:N",
			"CVSS:3.1//AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H":           "",
			"CVSS:3.1AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H":             "CVSS:3.1AV:N",
		}
		for input, token := range cases {
			_, err := Parse(input)
			if assert.ErrorIs(t, err, ErrInvalidFormat, input) {
				var cerr *Error
				if assert.True(t, errors.As(err, &cerr)) {
					assert.Equal(t, token, cerr.Token, input)
				}
			}
		}
	})

	t.Run("IncompleteVector", func(t *testing.T) {
		_, err := Parse("CVSS:3.1/AV:N/AC:L")
		if assert.ErrorIs(t, err, ErrIncompleteVector) {
			var cerr *Error
			if assert.True(t, errors.As(err, &cerr)) {
				assert.Equal(t, []Key{PrivilegesRequired, UserInteraction, Scope, Confidentiality, Integrity, Availability}, cerr.Missing)
			}
			assert.Equal(t, "incomplete CVSS vector: missing PR, UI, S, C, I, A", err.Error())
		}

		_, err = Parse("CVSS:3.1")
		if assert.ErrorIs(t, err, ErrIncompleteVector) {
			var cerr *Error
			errors.As(err, &cerr)
			assert.Len(t, cerr.Missing, 8)
		}
	})
}

func TestMetricSetString(t *testing.T) {
	m := MetricSet{"N", "L", "N", "R", "U", "H", "H", "H"}
	assert.Equal(t, "CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H", m.String())

	t.Run("RoundTrip", func(t *testing.T) {
		sets := allMetricSets()
		assert.Len(t, sets, 4*2*3*2*2*3*3*3)
		for _, m := range sets {
			parsed, err := Parse(m.String())
			if !assert.NoError(t, err) || !assert.Equal(t, m, parsed) {
				return
			}
		}
	})
}

func TestMetricSetValidate(t *testing.T) {
	assert.NoError(t, MetricSet{"N", "L", "N", "R", "U", "H", "H", "H"}.Validate())
	assert.ErrorIs(t, MetricSet{"N", "L", "N", "R", "X", "H", "H", "H"}.Validate(), ErrInvalidFormat)
	assert.ErrorIs(t, MetricSet{"N", "L", "N", "R", "", "H", "H", "H"}.Validate(), ErrIncompleteVector)
}

func TestMerge(t *testing.T) {
	base := "CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H"

	t.Run("Single", func(t *testing.T) {
		v, err := Merge(base, Adjustments{"AC": "H"})
		if assert.NoError(t, err) {
			assert.Equal(t, "CVSS:3.1/AV:N/AC:H/PR:N/UI:R/S:U/C:H/I:H/A:H", v)
		}
	})

	t.Run("EmptyIsIdentity", func(t *testing.T) {
		for _, input := range []string{base, "CVSS:3.0/A:H/I:H/C:H/S:U/UI:R/PR:N/AC:L/AV:N"} {
			m, err := Parse(input)
			if !assert.NoError(t, err) {
				continue
			}
			v, err := Merge(input, Adjustments{})
			if assert.NoError(t, err) {
				assert.Equal(t, m.String(), v)
			}
			v, err = Merge(input, nil)
			if assert.NoError(t, err) {
				assert.Equal(t, m.String(), v)
			}
		}
	})

	t.Run("EmptyValuesIgnored", func(t *testing.T) {
		v, err := Merge(base, Adjustments{"AV": "", "AC": "", "S": "C"})
		if assert.NoError(t, err) {
			assert.Equal(t, "CVSS:3.1/AV:N/AC:L/PR:N/UI:R/S:C/C:H/I:H/A:H", v)
		}
	})

	t.Run("NormalizesVersion", func(t *testing.T) {
		v, err := Merge("CVSS:3.0/AV:N/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H", Adjustments{"PR": "L"})
		if assert.NoError(t, err) {
			assert.Equal(t, "CVSS:3.1/AV:N/AC:L/PR:L/UI:R/S:U/C:H/I:H/A:H", v)
		}
	})

	t.Run("InvalidAdjustment", func(t *testing.T) {
		_, err := Merge(base, Adjustments{"A": "M"})
		if assert.ErrorIs(t, err, ErrInvalidAdjustment) {
			var cerr *Error
			errors.As(err, &cerr)
			assert.Equal(t, "A", cerr.Key)
			assert.Equal(t, "M", cerr.Value)
			assert.Equal(t, `invalid CVSS adjustment: "M" is not a valid value for A`, err.Error())
		}

		_, err = Merge(base, Adjustments{"AV": "X", "A": "M"})
		if assert.ErrorIs(t, err, ErrInvalidAdjustment) {
			var cerr *Error
			errors.As(err, &cerr)
			assert.Equal(t, "AV", cerr.Key)
		}

		_, err = Merge(base, Adjustments{"MAV": "N"})
		if assert.ErrorIs(t, err, ErrInvalidAdjustment) {
			var cerr *Error
			errors.As(err, &cerr)
			assert.Equal(t, "MAV", cerr.Key)
		}
	})

	t.Run("InvalidBase", func(t *testing.T) {
		_, err := Merge("CVSS:3.1/AV:N/AC:L", Adjustments{"AC": "H"})
		assert.ErrorIs(t, err, ErrIncompleteVector)
		_, err = Merge("CVSS:3.1/AV:X/AC:L/PR:N/UI:R/S:U/C:H/I:H/A:H", Adjustments{"AV": "N"})
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("DoesNotMutateInput", func(t *testing.T) {
		adjustments := Adjustments{"AC": "H", "UI": ""}
		_, err := Merge(base, adjustments)
		assert.NoError(t, err)
		assert.Equal(t, Adjustments{"AC": "H", "UI": ""}, adjustments)
	})
}

func TestDiff(t *testing.T) {
	m1 := MetricSet{"N", "L", "N", "R", "U", "H", "H", "H"}
	m2 := m1.With(AttackComplexity, "H").With(Availability, "L")
	assert.Equal(t, Adjustments{}, Diff(m1, m1))
	assert.Equal(t, Adjustments{"AC": "H", "A": "L"}, Diff(m1, m2))

	v, err := Merge(m1.String(), Diff(m1, m2))
	if assert.NoError(t, err) {
		assert.Equal(t, m2.String(), v)
	}
}

func TestKey(t *testing.T) {
	for _, k := range Keys {
		parsed, ok := ParseKey(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	_, ok := ParseKey("E")
	assert.False(t, ok)
	assert.Equal(t, "?", Key(42).String())
	assert.False(t, Key(42).Allows("N"))

	d := AttackVector.Domain()
	d[0] = "X"
	assert.Equal(t, []Value{"N", "A", "L", "P"}, AttackVector.Domain())
}
