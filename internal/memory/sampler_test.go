// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package memory

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqProbe returns successive values from a fixed list.
func seqProbe(name string, values ...float64) Probe {
	i := 0
	return ProbeFunc{Label: name, Fn: func() (float64, error) {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v, nil
	}}
}

func failingProbe(name string) Probe {
	return ProbeFunc{Label: name, Fn: func() (float64, error) {
		return 0, ErrUnsupported
	}}
}

func TestSampler_PicksFirstWorkingProbe(t *testing.T) {
	s := NewSampler(nil, failingProbe("RSS"), seqProbe("PSS", 10), seqProbe("heap", 1))

	assert.True(t, s.Supported())
	assert.Equal(t, "PSS", s.Basis())
}

func TestSampler_Unsupported(t *testing.T) {
	s := NewSampler(nil, failingProbe("RSS"), failingProbe("PSS"))

	assert.False(t, s.Supported())
	assert.Equal(t, "", s.Basis())

	err := s.RecordBaseline()
	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.Equal(t, 0.0, s.Delta())
}

func TestSampler_DeltaNeverNegative(t *testing.T) {
	// Selection consumes one sample, baseline the next.
	s := NewSampler(nil, seqProbe("RSS", 100, 100, 120, 90, 100))
	require.NoError(t, s.RecordBaseline())

	base, ok := s.Baseline()
	require.True(t, ok)
	assert.Equal(t, 100.0, base)

	assert.InDelta(t, 20.0, s.Delta(), 1e-9)
	assert.Equal(t, 0.0, s.Delta(), "shrinking footprint clamps to zero")
	assert.Equal(t, 0.0, s.Delta())
}

func TestSampler_NoBaseline(t *testing.T) {
	s := NewSampler(nil, seqProbe("RSS", 50, 80))
	assert.Equal(t, 0.0, s.Delta())
}

func TestHeapProbe(t *testing.T) {
	mb, err := HeapProbe{}.SampleMB()
	require.NoError(t, err)
	assert.Greater(t, mb, 0.0)
}

func TestDefaultProbes(t *testing.T) {
	s := NewSampler(nil, DefaultProbes()...)
	require.True(t, s.Supported(), "heap probe always works")

	if runtime.GOOS == "linux" {
		assert.Contains(t, []string{"RSS", "PSS"}, s.Basis())
	} else {
		assert.Equal(t, "heap", s.Basis())
	}
}
