// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the state of one interactive shell session:
// its id, sandbox root, current directory and in-memory line history.
// The current directory is only ever set to a sandbox-resolved path.
package session
