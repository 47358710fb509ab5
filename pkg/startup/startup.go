// Package startup runs the readiness checks that precede the prompt.
package startup

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
	"github.com/minhyannv/commizard-go/pkg/output"
)

// Banner is shown once before the first prompt.
const Banner = `  ____                          _ _____              _
 / ___|___  _ __ ___  _ __ ___ (_)__  /__ _ _ __ __| |
| |   / _ \| '_ ` + "`" + ` _ \| '_ ` + "`" + ` _ \| | / // _` + "`" + ` | '__/ _` + "`" + ` |
| |__| (_) | | | | | | | | | | | |/ /| (_| | | | (_| |
 \____\___/|_| |_| |_|_| |_| |_|_/____\__,_|_|  \__,_|`

// Git is the VCS side of the checks.
type Git interface {
	IsInstalled(ctx context.Context) bool
	IsInsideWorkTree(ctx context.Context) bool
	Branch(ctx context.Context) (string, error)
}

// Server is the inference side of the checks.
type Server interface {
	Ping(ctx context.Context) bool
}

// Report holds the probe results.
type Report struct {
	GitInstalled  bool
	ServerRunning bool
	InWorkTree    bool
	// Branch is "" when it could not be resolved.
	Branch string
}

// Ready reports whether the REPL may start.
func (r Report) Ready() bool {
	return r.InWorkTree
}

// Probe runs the readiness checks and the branch lookup concurrently,
// bounded by timeout.
func Probe(ctx context.Context, git Git, server Server, timeout time.Duration, logger loggerpkg.Logger) Report {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var report Report
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.GitInstalled = git.IsInstalled(gctx)
		return nil
	})
	g.Go(func() error {
		report.ServerRunning = server.Ping(gctx)
		return nil
	})
	g.Go(func() error {
		report.InWorkTree = git.IsInsideWorkTree(gctx)
		return nil
	})
	g.Go(func() error {
		branch, err := git.Branch(gctx)
		if err != nil {
			loggerpkg.Debug(logger, "branch lookup failed", map[string]any{"error": err.Error()})
			return nil
		}
		report.Branch = branch
		return nil
	})
	_ = g.Wait()

	loggerpkg.Debug(logger, "startup probes", map[string]any{
		"git_installed":  report.GitInstalled,
		"server_running": report.ServerRunning,
		"in_work_tree":   report.InWorkTree,
		"branch":         report.Branch,
		"duration_ms":    time.Since(start).Milliseconds(),
	})
	return report
}

// Announce prints the banner and the probe warnings. It returns false when
// the shell cannot run here.
func Announce(p *output.Printer, report Report) bool {
	p.Banner(Banner)
	if !report.GitInstalled {
		p.Warning("git is not installed or not on PATH.")
	}
	if !report.ServerRunning {
		p.Warning("local AI server is not running. Start it with 'ollama serve'.")
	}
	if !report.InWorkTree {
		p.Error("not inside a git repository.")
		return false
	}
	if report.Branch != "" {
		p.Plain(fmt.Sprintf("On branch %s.", report.Branch))
	}
	p.Plain("Type 'help' to list commands.")
	return true
}
