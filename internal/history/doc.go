// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists the command log in a local SQLite database.
//
// Every executed line is appended with its session, resolved command
// and outcome. Consecutive duplicates are suppressed and the log is
// pruned to a configured row limit on insert. The store is optional:
// the shell runs without it when the database cannot be opened.
package history
