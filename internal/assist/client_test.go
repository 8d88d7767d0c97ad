// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"summary": "one issue found",
			"issues": [{"severity": "warning", "line": 3, "message": "unused variable"}],
			"suggestions": ["remove the variable"]
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key").WithBaseURL(server.URL)

	result, err := client.Analyze(context.Background(), "python", "x = 1\n", "")
	require.NoError(t, err)
	assert.Equal(t, "one issue found", result.Summary)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, 3, result.Issues[0].Line)
	assert.Equal(t, []string{"remove the variable"}, result.Suggestions)
}

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		w.Write([]byte(`{"generated_code": "print('hi')", "explanation": "prints hi"}`))
	}))
	defer server.Close()

	client := NewClient("test-key").WithBaseURL(server.URL)

	result, err := client.Generate(context.Background(), "say hi", "python")
	require.NoError(t, err)
	assert.Equal(t, "print('hi')", result.Code)
	assert.Equal(t, "prints hi", result.Explanation)
}

func TestNotConfigured(t *testing.T) {
	client := NewClient("")
	_, err := client.Analyze(context.Background(), "python", "x = 1\n", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSourceTooLarge(t *testing.T) {
	client := NewClient("test-key")
	_, err := client.Analyze(context.Background(), "python", strings.Repeat("a", MaxSourceSize+1), "")
	assert.ErrorIs(t, err, ErrSourceTooLarge)
}

func TestAuthFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"code": "bad_key", "message": "invalid key"}}`))
	}))
	defer server.Close()

	client := NewClient("wrong-key").WithBaseURL(server.URL)
	_, err := client.Generate(context.Background(), "say hi", "python")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": {"message": "transient"}}`))
			return
		}
		w.Write([]byte(`{"generated_code": "ok", "explanation": ""}`))
	}))
	defer server.Close()

	client := NewClient("test-key").WithBaseURL(server.URL).WithTimeout(5 * time.Second)

	result, err := client.Generate(context.Background(), "say hi", "python")
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Code)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"main.py", "python", true},
		{"app.js", "javascript", true},
		{"server.go", "go", true},
		{"util.hpp", "cpp", true},
		{"notes.txt", "", false},
		{"Makefile", "", false},
	}
	for _, tt := range tests {
		lang, err := DetectLanguage(tt.path)
		if tt.ok {
			if err != nil {
				t.Errorf("DetectLanguage(%q) error: %v", tt.path, err)
				continue
			}
			if lang != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, lang, tt.want)
			}
		} else if err == nil {
			t.Errorf("DetectLanguage(%q) succeeded, want error", tt.path)
		}
	}
}
