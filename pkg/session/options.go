package session

import (
	"io"

	"github.com/minhyannv/commizard-go/pkg/commands"
	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
	"github.com/minhyannv/commizard-go/pkg/vcs"
)

// Option configures optional runtime dependencies for a Session.
type Option func(*sessionDeps)

type sessionDeps struct {
	logger    loggerpkg.Logger
	out       io.Writer
	clipboard commands.Clipboard
	git       *vcs.Git
	backend   Backend
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *sessionDeps) {
		d.logger = l
	}
}

// WithOutput sets where user-facing messages go. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(d *sessionDeps) {
		d.out = w
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c commands.Clipboard) Option {
	return func(d *sessionDeps) {
		d.clipboard = c
	}
}

// WithVCS replaces the git adapter, e.g. to run against another directory.
func WithVCS(g *vcs.Git) Option {
	return func(d *sessionDeps) {
		d.git = g
	}
}

// WithBackend bypasses provider selection.
func WithBackend(b Backend) Option {
	return func(d *sessionDeps) {
		d.backend = b
	}
}
