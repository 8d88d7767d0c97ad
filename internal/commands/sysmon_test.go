// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMem(t *testing.T) {
	ctx, out := newCtx(t)

	if err := run(t, ctx, "mem"); err != nil {
		t.Skipf("memory stats unavailable here: %v", err)
	}
	assert.Contains(t, out.String(), "total")
	assert.Contains(t, out.String(), "used")
}

func TestDisk(t *testing.T) {
	ctx, out := newCtx(t)

	if err := run(t, ctx, "disk"); err != nil {
		t.Skipf("disk stats unavailable here: %v", err)
	}
	assert.Contains(t, out.String(), "free")
}

func TestPsRejectsBadCount(t *testing.T) {
	ctx, _ := newCtx(t)
	err := run(t, ctx, "ps", "-n", "banana")
	assert.Error(t, err)
}
