// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"fmt"
	"strings"
)

// =============================================================================
// STANDARD SUITE
// =============================================================================

// Suite is a named, predefined benchmark configuration.
type Suite struct {
	Name        string
	Description string
	ItemCount   int
	Iterations  int
	Type        Type
}

// Apply overlays the suite onto base, keeping base's clock and timing.
func (s Suite) Apply(base Config) Config {
	base.ItemCount = s.ItemCount
	base.Iterations = s.Iterations
	base.Type = s.Type
	return base
}

// GetStandardSuites returns the standard benchmark suites.
func GetStandardSuites() []Suite {
	return []Suite{
		{
			Name:        "static-small",
			Description: "Initial render of a short list",
			ItemCount:   100,
			Iterations:  5,
			Type:        TypeStaticRender,
		},
		{
			Name:        "static-large",
			Description: "Initial render of a long list",
			ItemCount:   1000,
			Iterations:  5,
			Type:        TypeStaticRender,
		},
		{
			Name:        "scroll",
			Description: "Scripted scroll through a long list at 500 px/s",
			ItemCount:   1000,
			Iterations:  5,
			Type:        TypeScrollPerformance,
		},
		{
			Name:        "memory",
			Description: "Memory growth attributable to a long list",
			ItemCount:   1000,
			Iterations:  3,
			Type:        TypeMemoryUsage,
		},
	}
}

// FindSuite looks up a standard suite by name.
func FindSuite(name string) (Suite, error) {
	for _, s := range GetStandardSuites() {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Suite{}, fmt.Errorf("unknown suite %q", name)
}
