// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles centralizes terminal styling for nlterm output.
// Configure switches the lipgloss color profile once at startup based
// on the configured color mode and whether stdout is a terminal.
package styles
