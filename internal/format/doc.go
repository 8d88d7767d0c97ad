// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format renders sizes, durations and aligned tables for
// terminal output. Alignment is rune-width aware so wide characters
// do not break columns.
package format
