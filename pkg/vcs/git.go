// Package vcs wraps the git command line.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
)

// ErrNotInWorkTree is returned when the working directory is not inside a
// git working tree.
var ErrNotInWorkTree = errors.New("not inside a git working tree")

// Result captures one git invocation.
type Result struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// Git runs the git executable.
type Git struct {
	// Binary defaults to "git".
	Binary  string
	Dir     string
	Timeout time.Duration
	Logger  loggerpkg.Logger
}

// New returns an adapter rooted at dir ("" for the process working directory).
func New(dir string, l loggerpkg.Logger) *Git {
	if l == nil {
		l = loggerpkg.NopLogger{}
	}
	return &Git{Binary: "git", Dir: dir, Logger: l}
}

// Run executes git with args and captures its output. ExitCode is -1 when
// the process could not be started or was killed.
func (g *Git) Run(ctx context.Context, args ...string) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}
	binary := g.Binary
	if binary == "" {
		binary = "git"
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	if g.Dir != "" {
		cmd.Dir = g.Dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}
	loggerpkg.Debug(g.Logger, "git", map[string]any{
		"args":        args,
		"exit_code":   exitCode,
		"duration_ms": time.Since(start).Milliseconds(),
		"stderr":      truncate(stderr.String(), 500),
	})

	return Result{
		Args:     args,
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
	}
}

// IsInstalled reports whether git can be executed.
func (g *Git) IsInstalled(ctx context.Context) bool {
	return g.Run(ctx, "--version").ExitCode == 0
}

// IsInsideWorkTree reports whether Dir is inside a working tree.
func (g *Git) IsInsideWorkTree(ctx context.Context) bool {
	res := g.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return res.ExitCode == 0 && strings.TrimSpace(res.Stdout) == "true"
}

// Diff returns the cleaned staged diff, or the unstaged diff when nothing is
// staged. An empty string means there is nothing to commit.
func (g *Git) Diff(ctx context.Context) (string, error) {
	staged := g.Run(ctx, "diff", "--cached", "--no-color")
	if staged.ExitCode != 0 {
		return "", commandError(staged)
	}
	if diff := CleanDiff(staged.Stdout); diff != "" {
		return diff, nil
	}
	unstaged := g.Run(ctx, "diff", "--no-color")
	if unstaged.ExitCode != 0 {
		return "", commandError(unstaged)
	}
	return CleanDiff(unstaged.Stdout), nil
}

// Commit records message as a new commit. When nothing is staged the tracked
// modifications are committed, matching what Diff showed. It returns the exit
// code and the text to show the user.
func (g *Git) Commit(ctx context.Context, message string) (int, string) {
	args := []string{"commit", "-m", message}
	if !g.hasStaged(ctx) {
		args = []string{"commit", "-a", "-m", message}
	}
	res := g.Run(ctx, args...)
	if res.ExitCode == 0 {
		return 0, strings.TrimSpace(res.Stdout)
	}
	text := strings.TrimSpace(res.Stderr)
	if text == "" {
		text = strings.TrimSpace(res.Stdout)
	}
	if text == "" && res.Err != nil {
		text = res.Err.Error()
	}
	return res.ExitCode, text
}

func (g *Git) hasStaged(ctx context.Context) bool {
	// --quiet exits 1 when there are differences.
	return g.Run(ctx, "diff", "--cached", "--quiet").ExitCode == 1
}

// CleanDiff drops index lines and trailing whitespace.
func CleanDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "index ") {
			continue
		}
		out = append(out, strings.TrimRight(line, " \t\r"))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func commandError(res Result) error {
	msg := strings.TrimSpace(res.Stderr)
	if msg == "" && res.Err != nil {
		msg = res.Err.Error()
	}
	return fmt.Errorf("git %s: exit %d: %s", strings.Join(res.Args, " "), res.ExitCode, msg)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
