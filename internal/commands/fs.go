// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// fs.go - sandboxed filesystem commands.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/jeranaias/nlterm/internal/format"
	"github.com/jeranaias/nlterm/internal/sandbox"
	"github.com/jeranaias/nlterm/internal/styles"
)

// =============================================================================
// PATH HELPERS
// =============================================================================

// resolve passes a user path through the sandbox against the current
// session directory.
func resolve(ctx *Context, path string) (string, error) {
	return sandbox.Resolve(ctx.Session.Root(), ctx.Session.Cwd(), path)
}

// pathErr maps os errors to the shell's user-facing taxonomy.
func pathErr(op, path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%s: no such file or directory: %s", op, path)
	case os.IsPermission(err):
		return fmt.Errorf("%s: permission denied: %s", op, path)
	default:
		return fmt.Errorf("%s: %s: %w", op, path, err)
	}
}

// =============================================================================
// LISTING AND NAVIGATION
// =============================================================================

func cmdLs(ctx *Context, args []string) error {
	flags, positional := ParseFlags(args)
	target := "."
	if len(positional) > 0 {
		target = positional[0]
	}

	path, err := resolve(ctx, target)
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return pathErr("ls", target, err)
	}

	_, all := flags["a"]
	_, long := flags["l"]

	var names []string
	var rows [][]string
	if long {
		rows = append(rows, []string{"MODE", "SIZE", "MODIFIED", "NAME"})
	}
	for _, entry := range entries {
		name := entry.Name()
		if !all && strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			name = styles.DirName.Render(name + "/")
		}
		if long {
			info, err := entry.Info()
			if err != nil {
				return pathErr("ls", entry.Name(), err)
			}
			rows = append(rows, []string{
				info.Mode().String(),
				format.Size(uint64(info.Size())),
				info.ModTime().Format("Jan _2 15:04"),
				name,
			})
		} else {
			names = append(names, name)
		}
	}

	if long {
		fmt.Fprint(ctx.Out, format.Table(rows, true))
	} else {
		fmt.Fprint(ctx.Out, format.Columns(names, styles.Width()))
	}
	return nil
}

func cmdCd(ctx *Context, args []string) error {
	// Bare cd returns to the sandbox root.
	target := "/"
	if len(args) > 0 {
		target = args[0]
	}

	path, err := resolve(ctx, target)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return pathErr("cd", target, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cd: not a directory: %s", target)
	}

	ctx.Session.Chdir(path)
	return nil
}

func cmdPwd(ctx *Context, args []string) error {
	fmt.Fprintln(ctx.Out, ctx.Session.RelCwd())
	return nil
}

// =============================================================================
// CREATION AND REMOVAL
// =============================================================================

func cmdMkdir(ctx *Context, args []string) error {
	flags, positional := ParseFlags(args)
	_, parents := flags["p"]

	for _, target := range positional {
		path, err := resolve(ctx, target)
		if err != nil {
			return err
		}
		if parents {
			err = os.MkdirAll(path, 0755)
		} else {
			err = os.Mkdir(path, 0755)
		}
		if err != nil {
			return pathErr("mkdir", target, err)
		}
		fmt.Fprintln(ctx.Out, styles.Success.Render("created directory: "+target))
	}
	return nil
}

func cmdRm(ctx *Context, args []string) error {
	flags, positional := ParseFlags(args)
	_, recursive := flags["r"]
	_, force := flags["f"]

	for _, target := range positional {
		path, err := resolve(ctx, target)
		if err != nil {
			return err
		}
		// The sandbox root itself is never removable.
		if path == ctx.Session.Root() {
			return fmt.Errorf("rm: refusing to remove the root directory")
		}

		info, err := os.Stat(path)
		if err != nil {
			if force && os.IsNotExist(err) {
				continue
			}
			return pathErr("rm", target, err)
		}
		if info.IsDir() && !recursive {
			return fmt.Errorf("rm: is a directory (use -r): %s", target)
		}

		if recursive {
			err = os.RemoveAll(path)
		} else {
			err = os.Remove(path)
		}
		if err != nil {
			return pathErr("rm", target, err)
		}
		fmt.Fprintln(ctx.Out, styles.Success.Render("removed: "+target))
	}
	return nil
}

func cmdTouch(ctx *Context, args []string) error {
	for _, target := range args {
		path, err := resolve(ctx, target)
		if err != nil {
			return err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return pathErr("touch", target, err)
		}
		f.Close()
	}
	return nil
}

// =============================================================================
// READING
// =============================================================================

func cmdCat(ctx *Context, args []string) error {
	for _, target := range args {
		path, err := resolve(ctx, target)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return pathErr("cat", target, err)
		}

		if highlightable(path) && styles.IsTerminal() {
			// Lexer chosen by filename; quick.Highlight falls back to
			// plain text for unknown extensions.
			if err := quick.Highlight(ctx.Out, string(data), filepath.Base(path), "terminal256", "monokai"); err == nil {
				continue
			}
		}
		if _, err := ctx.Out.Write(data); err != nil {
			return fmt.Errorf("cat: %w", err)
		}
	}
	return nil
}

// highlightable reports whether a file looks like text worth syntax
// highlighting. Binary-ish extensions skip the lexer entirely.
func highlightable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go", ".py", ".js", ".ts", ".rs", ".c", ".h", ".cpp", ".java",
		".sh", ".rb", ".toml", ".yaml", ".yml", ".json", ".md", ".sql", ".html", ".css":
		return true
	}
	return false
}

func cmdHead(ctx *Context, args []string) error {
	return headTail(ctx, args, "head")
}

func cmdTail(ctx *Context, args []string) error {
	return headTail(ctx, args, "tail")
}

func headTail(ctx *Context, args []string, op string) error {
	flags, positional := ParseFlags(args, "n")
	n := 10
	if v, ok := flags["n"]; ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("%s: invalid line count %q", op, v)
		}
		n = parsed
	}

	target := positional[0]
	path, err := resolve(ctx, target)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pathErr(op, target, err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if op == "head" {
		if len(lines) > n {
			lines = lines[:n]
		}
	} else {
		if len(lines) > n {
			lines = lines[len(lines)-n:]
		}
	}
	for _, line := range lines {
		fmt.Fprintln(ctx.Out, line)
	}
	return nil
}

func cmdWc(ctx *Context, args []string) error {
	var rows [][]string
	rows = append(rows, []string{"LINES", "WORDS", "BYTES", "NAME"})
	for _, target := range args {
		path, err := resolve(ctx, target)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return pathErr("wc", target, err)
		}
		text := string(data)
		lines := strings.Count(text, "\n")
		words := len(strings.Fields(text))
		rows = append(rows, []string{
			fmt.Sprintf("%d", lines),
			fmt.Sprintf("%d", words),
			fmt.Sprintf("%d", len(data)),
			target,
		})
	}
	fmt.Fprint(ctx.Out, format.Table(rows, true))
	return nil
}

// =============================================================================
// COPY, MOVE, FIND
// =============================================================================

func cmdCp(ctx *Context, args []string) error {
	flags, positional := ParseFlags(args)
	_, recursive := flags["r"]

	src, err := resolve(ctx, positional[0])
	if err != nil {
		return err
	}
	dst, err := resolve(ctx, positional[1])
	if err != nil {
		return err
	}

	info, err := os.Stat(src)
	if err != nil {
		return pathErr("cp", positional[0], err)
	}

	// Copying onto an existing directory targets a child entry.
	if dstInfo, err := os.Stat(dst); err == nil && dstInfo.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}

	if info.IsDir() {
		if !recursive {
			return fmt.Errorf("cp: is a directory (use -r): %s", positional[0])
		}
		return copyTree(src, dst)
	}
	return copyFile(src, dst, info.Mode())
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("cp: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("cp: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("cp: %w", err)
	}
	return out.Sync()
}

func cmdMv(ctx *Context, args []string) error {
	src, err := resolve(ctx, args[0])
	if err != nil {
		return err
	}
	dst, err := resolve(ctx, args[1])
	if err != nil {
		return err
	}

	if dstInfo, err := os.Stat(dst); err == nil && dstInfo.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	if err := os.Rename(src, dst); err != nil {
		return pathErr("mv", args[0], err)
	}
	return nil
}

func cmdFind(ctx *Context, args []string) error {
	pattern := args[0]
	start := "."
	if len(args) > 1 {
		start = args[1]
	}
	path, err := resolve(ctx, start)
	if err != nil {
		return err
	}

	var matches []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			return nil
		}
		ok, matchErr := filepath.Match(pattern, d.Name())
		if matchErr != nil {
			return matchErr
		}
		if ok {
			matches = append(matches, sandbox.Rel(ctx.Session.Root(), p))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("find: invalid pattern %q: %w", pattern, err)
	}

	sort.Strings(matches)
	for _, m := range matches {
		fmt.Fprintln(ctx.Out, m)
	}
	fmt.Fprintln(ctx.Out, styles.Dim.Render(fmt.Sprintf("%d match(es)", len(matches))))
	return nil
}
