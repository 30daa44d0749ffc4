// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package memory

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/prometheus/procfs"
)

// =============================================================================
// PROBES
// =============================================================================

// ErrUnsupported is returned by a probe that cannot measure on this platform.
var ErrUnsupported = errors.New("unsupported")

// bytesPerMB converts byte counts to the decimal megabytes used in reports.
const bytesPerMB = 1_000_000.0

// Probe samples the current process footprint in megabytes.
type Probe interface {
	// Name identifies the measurement basis, e.g. "RSS".
	Name() string

	// SampleMB returns the footprint, or an error wrapping ErrUnsupported.
	SampleMB() (float64, error)
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc struct {
	Label string
	Fn    func() (float64, error)
}

func (p ProbeFunc) Name() string               { return p.Label }
func (p ProbeFunc) SampleMB() (float64, error) { return p.Fn() }

// RSSProbe reads resident set size from /proc/self/stat.
type RSSProbe struct {
	fs *procfs.FS
}

// NewRSSProbe creates an RSS probe over the default procfs mount.
func NewRSSProbe() *RSSProbe {
	return &RSSProbe{fs: defaultFS()}
}

func (p *RSSProbe) Name() string { return "RSS" }

func (p *RSSProbe) SampleMB() (float64, error) {
	proc, err := self(p.fs)
	if err != nil {
		return 0, err
	}
	stat, err := proc.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: read stat: %v", ErrUnsupported, err)
	}
	return float64(stat.ResidentMemory()) / bytesPerMB, nil
}

// HeapProbe reports the Go heap in use. It works on every platform and is the
// last resort when the kernel exposes no process accounting.
type HeapProbe struct{}

func (HeapProbe) Name() string { return "heap" }

func (HeapProbe) SampleMB() (float64, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return float64(ms.HeapAlloc) / bytesPerMB, nil
}

// DefaultProbes returns probes in preference order: RSS, PSS, heap.
func DefaultProbes() []Probe {
	return []Probe{NewRSSProbe(), NewPSSProbe(), HeapProbe{}}
}

func defaultFS() *procfs.FS {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil
	}
	return &fs
}

func self(fs *procfs.FS) (procfs.Proc, error) {
	if fs == nil {
		return procfs.Proc{}, fmt.Errorf("%w: procfs not mounted", ErrUnsupported)
	}
	proc, err := fs.Self()
	if err != nil {
		return procfs.Proc{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return proc, nil
}
