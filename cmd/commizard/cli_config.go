package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	configpkg "github.com/minhyannv/commizard-go/pkg/config"
	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
)

const usageText = `Usage: commizard [options]

Generate commit messages for the current git repository with a local model.
Run it inside a repository, then type 'help' at the prompt.

Options:
  -h, --help      show this help and exit
  -v, --version   print the version and exit

Environment:
  OLLAMA_HOST             inference server (default http://localhost:11434)
  COMMIZARD_PROVIDER      ollama or openai
  COMMIZARD_API_KEY       API key for the openai provider
  COMMIZARD_CONFIG        path of the YAML config file
  COMMIZARD_VERBOSE       log diagnostics to stderr
  COMMIZARD_LOG_FILE      append JSON diagnostics to this file
  COMMIZARD_WRAP_WIDTH    column at which messages are wrapped
`

// parseArgs handles the informational flags. exit reports whether the
// process should stop with code instead of starting the shell.
func parseArgs(args []string, stdout, stderr io.Writer) (code int, exit bool) {
	fs := flag.NewFlagSet("commizard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "v", false, "print the version and exit")
	fs.BoolVar(&showVersion, "version", false, "print the version and exit")
	fs.BoolVar(&showHelp, "h", false, "show this help and exit")
	fs.BoolVar(&showHelp, "help", false, "show this help and exit")

	if err := fs.Parse(args); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n\n%s", err, usageText)
		return 2, true
	}
	if fs.NArg() > 0 {
		_, _ = fmt.Fprintf(stderr, "Error: unexpected argument %q\n\n%s", fs.Arg(0), usageText)
		return 2, true
	}
	switch {
	case showHelp:
		_, _ = fmt.Fprint(stdout, usageText)
		return 0, true
	case showVersion:
		_, _ = fmt.Fprintf(stdout, "commizard %s\n", version)
		return 0, true
	}
	return 0, false
}

// loadConfig reads the layered configuration.
func loadConfig() (configpkg.Config, error) {
	cfg, err := configpkg.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger sends diagnostics to stderr when verbose and to the log file when
// one is configured. With neither, nothing is logged.
func newLogger(cfg configpkg.Config, stderr io.Writer) (loggerpkg.Logger, io.Closer, error) {
	opts := loggerpkg.Options{File: cfg.LogFile, Level: slog.LevelInfo}
	if cfg.Verbose {
		opts.Console = stderr
		opts.Level = slog.LevelDebug
	}
	return loggerpkg.New(opts)
}
