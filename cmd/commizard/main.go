// Package main provides the interactive commit message shell.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
	"github.com/minhyannv/commizard-go/pkg/session"
	"github.com/minhyannv/commizard-go/pkg/startup"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// main is the program entry point.
func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, stdout, stderr io.Writer) int {
	if code, exit := parseArgs(args, stdout, stderr); exit {
		return code
	}

	cfg, err := loadConfig()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	appLogger, closer, err := newLogger(cfg, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = closer.Close() }()

	ctx := context.Background()
	sess := session.New(cfg, session.WithLogger(appLogger), session.WithOutput(stdout))
	report := startup.Probe(ctx, sess.Git, sess.Backend, cfg.ProbeTimeout, appLogger)
	if !startup.Announce(sess.Printer, report) {
		return 1
	}

	code := runREPL(ctx, sess, in, stdout)
	loggerpkg.Debug(appLogger, "exit", map[string]any{"code": code})
	return code
}
