// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package memory

// PSSProbe is unavailable on Windows.
type PSSProbe struct{}

// NewPSSProbe returns a probe that always reports ErrUnsupported.
func NewPSSProbe() *PSSProbe { return &PSSProbe{} }

func (p *PSSProbe) Name() string { return "PSS" }

func (p *PSSProbe) SampleMB() (float64, error) { return 0, ErrUnsupported }
