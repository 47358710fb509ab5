package vcs

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// initRepo creates a repository with one committed file.
func initRepo(t *testing.T) (*Git, string) {
	t.Helper()
	requireGit(t)
	dir := t.TempDir()
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")

	g := New(dir, nil)
	ctx := context.Background()
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "commit.gpgsign", "false"},
	} {
		if res := g.Run(ctx, args...); res.ExitCode != 0 {
			t.Fatalf("git %v: %s", args, res.Stderr)
		}
	}
	writeFile(t, dir, "file.txt", "hello\n")
	if res := g.Run(ctx, "add", "file.txt"); res.ExitCode != 0 {
		t.Fatalf("git add: %s", res.Stderr)
	}
	if res := g.Run(ctx, "commit", "-q", "-m", "init"); res.ExitCode != 0 {
		t.Fatalf("git commit: %s", res.Stderr)
	}
	return g, dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestRunMissingBinary(t *testing.T) {
	g := &Git{Binary: filepath.Join(t.TempDir(), "no-such-git")}
	res := g.Run(context.Background(), "status")
	if res.ExitCode != -1 || res.Err == nil {
		t.Fatalf("expected start failure, got %+v", res)
	}
	if g.IsInstalled(context.Background()) {
		t.Fatal("missing binary must not count as installed")
	}
}

func TestRunCapturesExitCode(t *testing.T) {
	requireGit(t)
	g := New(t.TempDir(), nil)
	res := g.Run(context.Background(), "no-such-subcommand")
	if res.ExitCode == 0 || res.ExitCode == -1 {
		t.Fatalf("expected git's own non-zero exit code, got %d", res.ExitCode)
	}
	if res.Stderr == "" {
		t.Fatal("expected stderr output")
	}
}

func TestIsInsideWorkTree(t *testing.T) {
	g, dir := initRepo(t)
	if !g.IsInsideWorkTree(context.Background()) {
		t.Fatal("expected repository to be a work tree")
	}
	if New(filepath.Join(dir, ".git"), nil).IsInsideWorkTree(context.Background()) {
		t.Fatal(".git directory is not a work tree")
	}
}

func TestDiffAndCommit(t *testing.T) {
	g, dir := initRepo(t)
	ctx := context.Background()

	diff, err := g.Diff(ctx)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if diff != "" {
		t.Fatalf("expected clean tree, got %q", diff)
	}

	writeFile(t, dir, "file.txt", "hello\nworld\n")
	diff, err = g.Diff(ctx)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !strings.HasPrefix(diff, "diff --git a/file.txt b/file.txt") || !strings.Contains(diff, "+world") {
		t.Fatalf("unexpected unstaged diff: %q", diff)
	}
	if strings.Contains(diff, "\nindex ") {
		t.Fatalf("index lines should be removed: %q", diff)
	}

	code, text := g.Commit(ctx, "feat: add world")
	if code != 0 {
		t.Fatalf("commit failed (%d): %s", code, text)
	}
	log := g.Run(ctx, "log", "-1", "--format=%s")
	if strings.TrimSpace(log.Stdout) != "feat: add world" {
		t.Fatalf("unexpected subject %q", log.Stdout)
	}

	code, text = g.Commit(ctx, "nothing")
	if code == 0 || text == "" {
		t.Fatalf("expected failure with explanation on clean tree, got %d %q", code, text)
	}
}

func TestCleanDiff(t *testing.T) {
	in := "diff --git a/a.go b/a.go\nindex 83db48f..bf269f4 100644\n--- a/a.go\n+++ b/a.go\n+x   \n\n\n"
	want := "diff --git a/a.go b/a.go\n--- a/a.go\n+++ b/a.go\n+x"
	if got := CleanDiff(in); got != want {
		t.Fatalf("CleanDiff = %q, want %q", got, want)
	}
}

func TestBranch(t *testing.T) {
	g, _ := initRepo(t)
	ctx := context.Background()
	if res := g.Run(ctx, "checkout", "-q", "-b", "feature/x"); res.ExitCode != 0 {
		t.Fatalf("checkout: %s", res.Stderr)
	}
	branch, err := g.Branch(ctx)
	if err != nil {
		t.Fatalf("Branch: %v", err)
	}
	if branch != "feature/x" {
		t.Fatalf("expected feature/x, got %q", branch)
	}

	head := strings.TrimSpace(g.Run(ctx, "rev-parse", "HEAD").Stdout)
	if res := g.Run(ctx, "checkout", "-q", "--detach"); res.ExitCode != 0 {
		t.Fatalf("detach: %s", res.Stderr)
	}
	if branch, _ := g.Branch(ctx); branch != head[:7] {
		t.Fatalf("expected short hash %s, got %q", head[:7], branch)
	}
}

func TestBranchOutsideRepository(t *testing.T) {
	g := New(t.TempDir(), nil)
	if _, err := g.Branch(context.Background()); !errors.Is(err, ErrNotInWorkTree) {
		t.Fatalf("expected ErrNotInWorkTree, got %v", err)
	}
}
