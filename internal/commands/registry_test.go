// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		want string
	}{
		{"ls", "ls"},
		{"dir", "ls"},  // alias
		{"list", "ls"}, // alias
		{"quit", "exit"},
		{"mem", "mem"},
		{"?", "help"},
	}
	for _, tc := range tests {
		cmd, ok := r.Get(tc.name)
		if !ok {
			t.Errorf("Get(%q) not found", tc.name)
			continue
		}
		if cmd.Name != tc.want {
			t.Errorf("Get(%q).Name = %q, want %q", tc.name, cmd.Name, tc.want)
		}
	}

	if _, ok := r.Get("frobnicate"); ok {
		t.Error("Get(frobnicate) should not resolve")
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	r.Register(&Command{Name: "ls", Handler: cmdLs})
}

func TestRegistryAliasCollisionPanics(t *testing.T) {
	r := NewRegistry()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on alias colliding with a command")
		}
	}()
	r.Register(&Command{Name: "newcmd", Aliases: []string{"pwd"}, Handler: cmdPwd})
}

func TestRegistryOrderDeterministic(t *testing.T) {
	a := NewRegistry().Names()
	b := NewRegistry().Names()
	if len(a) == 0 {
		t.Fatal("no builtins registered")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("registration order differs at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestRegistryCategories(t *testing.T) {
	r := NewRegistry()
	categories := r.Categories()

	want := map[string]bool{CategoryFS: false, CategorySystem: false, CategoryCode: false, CategoryShell: false}
	for _, c := range categories {
		if _, ok := want[c]; ok {
			want[c] = true
		}
	}
	for c, seen := range want {
		if !seen {
			t.Errorf("category %q missing", c)
		}
	}

	for _, cmd := range r.ByCategory(CategorySystem) {
		if cmd.Category != CategorySystem {
			t.Errorf("ByCategory returned %q with category %q", cmd.Name, cmd.Category)
		}
	}
}
