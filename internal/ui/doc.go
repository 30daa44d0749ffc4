// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the terminal presentation for framebench runs.
//
// # Key Types
//
//   - ProgressModel: Bubble Tea model with a progress bar fed by IterationMsg
//   - ReportView: Lip Gloss rendering of a report.Aggregate
//
// Styled output is used only when UseStyled says the destination is a
// terminal; redirected output gets the plain report.
package ui
