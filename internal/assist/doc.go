// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assist provides the client for the remote code-assistance
// service.
//
// The service analyzes source files and generates code from prompts.
// This package implements the HTTP client with retry logic, response
// size limits, and typed errors; the analyze and generate shell
// commands sit on top of it.
//
// # Key Types
//
//   - Client: HTTP client with retry and backoff
//   - AnalysisResult: summary, issues and suggestions for a source file
//   - GenerationResult: generated code plus explanation
//
// # Usage
//
//	client := assist.NewClient(apiKey)
//	result, err := client.Analyze(ctx, "python", source, "security")
//
// The zero-key client is valid; requests then fail with
// ErrNotConfigured so the shell can explain what to set. API keys are
// sent only in the Authorization header and never logged.
package assist
