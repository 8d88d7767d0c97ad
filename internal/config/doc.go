// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config manages nlterm configuration with TOML persistence.
//
// Configuration lives at ~/.nlterm/config.toml. Loading fills defaults
// for missing fields so partial files keep working across upgrades,
// then applies NLTERM_* environment overrides. A nonexistent sandbox
// root is the one startup condition treated as fatal.
//
// # Usage
//
//	cfg, err := config.Load()
//	config.SetGlobal(cfg)
//
// Saving goes through an atomic write so a crash cannot leave a
// half-written file behind.
package config
