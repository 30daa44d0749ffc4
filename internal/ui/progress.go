// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/framebench/internal/benchmark"
)

// =============================================================================
// MESSAGES
// =============================================================================

// IterationMsg reports a finished iteration.
type IterationMsg struct {
	Index  int
	Total  int
	Result benchmark.IterationResult
}

// DoneMsg ends the program once the run returns.
type DoneMsg struct {
	Outcome *benchmark.Outcome
	Err     error
}

// =============================================================================
// PROGRESS MODEL
// =============================================================================

// ProgressModel shows run progress while the orchestrator works on another
// goroutine. Pressing q or ctrl+c calls cancel and waits for DoneMsg.
type ProgressModel struct {
	title      string
	total      int
	done       int
	last       string
	bar        progress.Model
	cancel     func()
	cancelling bool
	outcome    *benchmark.Outcome
	err        error
}

// NewProgressModel creates a progress model for total iterations.
func NewProgressModel(title string, total int, cancel func()) ProgressModel {
	if total < 1 {
		total = 1
	}
	return ProgressModel{
		title:  title,
		total:  total,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		cancel: cancel,
	}
}

// Init implements tea.Model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 4
		if w > 60 {
			w = 60
		}
		if w < 10 {
			w = 10
		}
		m.bar.Width = w
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if !m.cancelling && m.cancel != nil {
				m.cancel()
			}
			m.cancelling = true
		}
		return m, nil

	case IterationMsg:
		m.done = msg.Index
		if msg.Total > 0 {
			m.total = msg.Total
		}
		m.last = msg.Result.Summary()
		return m, nil

	case DoneMsg:
		m.outcome = msg.Outcome
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	switch {
	case m.outcome != nil:
		b.WriteString(fmt.Sprintf("Finished %d of %d iterations (%s)", m.done, m.total, m.outcome.State))
	case m.done < m.total:
		b.WriteString(fmt.Sprintf("Running iteration %d of %d", m.done+1, m.total))
	default:
		b.WriteString("Generating report")
	}
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(m.Percent()))
	b.WriteString("\n")

	if m.last != "" {
		b.WriteString(mutedStyle.Render(m.last))
		b.WriteString("\n")
	}
	if m.cancelling {
		b.WriteString(mutedStyle.Render("Cancelling after the current iteration..."))
	} else if m.outcome == nil {
		b.WriteString(mutedStyle.Render("q to cancel"))
	}
	b.WriteString("\n")
	return b.String()
}

// Percent returns completed iterations as a fraction.
func (m ProgressModel) Percent() float64 {
	return float64(m.done) / float64(m.total)
}

// Outcome returns the run result once DoneMsg has arrived.
func (m ProgressModel) Outcome() (*benchmark.Outcome, error) {
	return m.outcome, m.err
}
