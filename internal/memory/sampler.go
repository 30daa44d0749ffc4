// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package memory

import (
	"log/slog"
	"math"
)

// =============================================================================
// SAMPLER
// =============================================================================

// Sampler records a baseline footprint and reports growth relative to it.
// It binds to the first probe that can take a sample.
type Sampler struct {
	probe    Probe
	logger   *slog.Logger
	baseline float64
	hasBase  bool
}

// NewSampler selects the first working probe from probes. With no working
// probe the sampler is unsupported and every delta is 0.
func NewSampler(logger *slog.Logger, probes ...Probe) *Sampler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Sampler{logger: logger}
	for _, p := range probes {
		if _, err := p.SampleMB(); err != nil {
			logger.Debug("memory probe unavailable", "probe", p.Name(), "error", err)
			continue
		}
		s.probe = p
		break
	}
	return s
}

// Supported reports whether a probe was found.
func (s *Sampler) Supported() bool { return s.probe != nil }

// Basis names the probe in use, or "" when unsupported.
func (s *Sampler) Basis() string {
	if s.probe == nil {
		return ""
	}
	return s.probe.Name()
}

// Sample returns the current footprint in MB.
func (s *Sampler) Sample() (float64, error) {
	if s.probe == nil {
		return 0, ErrUnsupported
	}
	return s.probe.SampleMB()
}

// RecordBaseline samples the footprint that later deltas are measured from.
func (s *Sampler) RecordBaseline() error {
	mb, err := s.Sample()
	if err != nil {
		return err
	}
	s.baseline = mb
	s.hasBase = true
	s.logger.Info("memory baseline recorded", "basis", s.Basis(), "mb", mb)
	return nil
}

// Baseline returns the recorded baseline and whether one exists.
func (s *Sampler) Baseline() (float64, bool) { return s.baseline, s.hasBase }

// Delta returns growth over the baseline in MB, never negative. It is 0 when
// unsupported, when no baseline was recorded, or when sampling fails.
func (s *Sampler) Delta() float64 {
	if !s.hasBase {
		return 0
	}
	mb, err := s.Sample()
	if err != nil {
		s.logger.Debug("memory sample failed", "error", err)
		return 0
	}
	return math.Max(0, mb-s.baseline)
}
