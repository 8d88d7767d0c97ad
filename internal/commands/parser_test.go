// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"ls", []string{"ls"}},
		{"ls -l docs", []string{"ls", "-l", "docs"}},
		{`mkdir "my folder"`, []string{"mkdir", "my folder"}},
		{`mkdir 'my folder'`, []string{"mkdir", "my folder"}},
		{`touch my\ file`, []string{"touch", "my file"}},
		{"  ls   -a  ", []string{"ls", "-a"}},
		{"", nil},
		{`cat "a b" c`, []string{"cat", "a b", "c"}},
	}
	for _, tc := range tests {
		got := SplitLine(tc.input)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitLine(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	flags, positional := ParseFlags([]string{"-l", "-a", "docs"})
	if _, ok := flags["l"]; !ok {
		t.Error("missing -l")
	}
	if _, ok := flags["a"]; !ok {
		t.Error("missing -a")
	}
	if !reflect.DeepEqual(positional, []string{"docs"}) {
		t.Errorf("positional = %v", positional)
	}
}

func TestParseFlagsValueFlag(t *testing.T) {
	flags, positional := ParseFlags([]string{"-n", "5", "file.txt"}, "n")
	if flags["n"] != "5" {
		t.Errorf("flags[n] = %q, want 5", flags["n"])
	}
	if !reflect.DeepEqual(positional, []string{"file.txt"}) {
		t.Errorf("positional = %v", positional)
	}
}

func TestParseFlagsTerminator(t *testing.T) {
	_, positional := ParseFlags([]string{"--", "-r"})
	if !reflect.DeepEqual(positional, []string{"-r"}) {
		t.Errorf("positional after -- = %v, want [-r]", positional)
	}
}

func TestValidateArgs(t *testing.T) {
	tests := []struct {
		cmd    Command
		args   []string
		wantOK bool
	}{
		{Command{Name: "pwd", MinArgs: 0, MaxArgs: 0}, nil, true},
		{Command{Name: "pwd", MinArgs: 0, MaxArgs: 0}, []string{"x"}, false},
		{Command{Name: "cp", MinArgs: 2, MaxArgs: 2}, []string{"a", "b"}, true},
		{Command{Name: "cp", MinArgs: 2, MaxArgs: 2}, []string{"a"}, false},
		{Command{Name: "cp", MinArgs: 2, MaxArgs: 2}, []string{"-r", "a", "b"}, true},
		{Command{Name: "cat", MinArgs: 1, MaxArgs: Unlimited}, []string{"a", "b", "c"}, true},
		{Command{Name: "cat", MinArgs: 1, MaxArgs: Unlimited}, nil, false},
		{Command{Name: "head", MinArgs: 1, MaxArgs: 1, ValueFlags: []string{"n"}}, []string{"-n", "5", "f"}, true},
	}
	for _, tc := range tests {
		err := ValidateArgs(&tc.cmd, tc.args)
		if tc.wantOK && err != nil {
			t.Errorf("ValidateArgs(%s, %v) unexpected error: %v", tc.cmd.Name, tc.args, err)
		}
		if !tc.wantOK {
			if err == nil {
				t.Errorf("ValidateArgs(%s, %v) expected error", tc.cmd.Name, tc.args)
				continue
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("error type = %T, want *ValidationError", err)
			}
		}
	}
}
