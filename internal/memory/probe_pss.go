// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package memory

import (
	"fmt"

	"github.com/prometheus/procfs"
)

// PSSProbe reads proportional set size from /proc/self/smaps_rollup.
type PSSProbe struct {
	fs *procfs.FS
}

// NewPSSProbe creates a PSS probe over the default procfs mount.
func NewPSSProbe() *PSSProbe {
	return &PSSProbe{fs: defaultFS()}
}

func (p *PSSProbe) Name() string { return "PSS" }

func (p *PSSProbe) SampleMB() (float64, error) {
	proc, err := self(p.fs)
	if err != nil {
		return 0, err
	}
	rollup, err := proc.ProcSMapsRollup()
	if err != nil {
		return 0, fmt.Errorf("%w: read smaps_rollup: %v", ErrUnsupported, err)
	}
	return float64(rollup.Pss) / bytesPerMB, nil
}
