// Package dbctest holds shared test fixtures and assertion helpers for
// the dbc package, mirroring the teacher's standalone test package so
// each _test.go file doesn't redeclare them.
package dbctest

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

// AssertSignalValue compares a decoded physical value against its
// expectation within delta, reporting the signal name on mismatch.
func AssertSignalValue(t *testing.T, signal string, expect, actual, delta float64) {
	assert.InDelta(
		t,
		expect,
		actual,
		delta,
		"signal `%v` value %v is different from expected %v",
		signal,
		actual,
		expect,
	)
}

// AssertSignalValues compares an entire decoded Decode() result map
// against expect, field by field, within delta.
func AssertSignalValues(t *testing.T, expect, actual map[string]float64, delta float64) {
	assert.Len(t, actual, len(expect))
	for name, actualValue := range actual {
		expectValue, ok := expect[name]
		if !ok {
			t.Errorf("actual signals contain %q which is not in expected signals", name)
			continue
		}
		AssertSignalValue(t, name, expectValue, actualValue, delta)
	}
}
