// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// assist.go - remote code-assistance commands.
package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/nlterm/internal/assist"
	"github.com/jeranaias/nlterm/internal/sandbox"
	"github.com/jeranaias/nlterm/internal/styles"
	"github.com/jeranaias/nlterm/internal/util"
)

// assistClient fetches the configured client or fails early so the
// user sees one consistent "not configured" message.
func assistClient(ctx *Context) (*assist.Client, error) {
	if ctx.Assist == nil || !ctx.Assist.IsConfigured() {
		return nil, assist.ErrNotConfigured
	}
	return ctx.Assist, nil
}

func cmdAnalyze(ctx *Context, args []string) error {
	flags, positional := ParseFlags(args, "t")
	client, err := assistClient(ctx)
	if err != nil {
		return err
	}

	target := positional[0]
	path, err := resolve(ctx, target)
	if err != nil {
		return err
	}
	language, err := assist.DetectLanguage(path)
	if err != nil {
		return err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return pathErr("analyze", target, err)
	}

	result, err := client.Analyze(context.Background(), language, string(source), flags["t"])
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	fmt.Fprintln(ctx.Out, styles.Header.Render("Analysis: ")+styles.Accent.Render(sandbox.Rel(ctx.Session.Root(), path)))
	if result.Summary != "" {
		fmt.Fprintln(ctx.Out, result.Summary)
	}
	for _, issue := range result.Issues {
		sev := styles.Warning
		if issue.Severity == "error" {
			sev = styles.Error
		}
		loc := ""
		if issue.Line > 0 {
			loc = fmt.Sprintf(":%d", issue.Line)
		}
		fmt.Fprintf(ctx.Out, "  %s%s  %s\n", sev.Render(issue.Severity), styles.Dim.Render(loc), issue.Message)
	}
	for _, s := range result.Suggestions {
		fmt.Fprintln(ctx.Out, "  "+styles.Info.Render("suggestion")+"  "+s)
	}
	return nil
}

func cmdGenerate(ctx *Context, args []string) error {
	flags, positional := ParseFlags(args, "l", "o")
	client, err := assistClient(ctx)
	if err != nil {
		return err
	}

	language := flags["l"]
	if language == "" {
		language = "python"
	}
	prompt := strings.Join(positional, " ")

	result, err := client.Generate(context.Background(), prompt, language)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	fmt.Fprintln(ctx.Out, styles.Header.Render("Generated ")+styles.Accent.Render(language))
	fmt.Fprintln(ctx.Out, result.Code)
	if result.Explanation != "" {
		fmt.Fprintln(ctx.Out, styles.Dim.Render(result.Explanation))
	}

	if out := flags["o"]; out != "" {
		path, err := resolve(ctx, out)
		if err != nil {
			return err
		}
		if err := util.AtomicWriteFile(path, []byte(result.Code), 0644); err != nil {
			return pathErr("generate", out, err)
		}
		fmt.Fprintln(ctx.Out, styles.Success.Render("saved to "+sandbox.Rel(ctx.Session.Root(), path)))
	}
	return nil
}
