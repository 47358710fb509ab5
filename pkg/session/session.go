// Package session assembles the collaborators of one interactive run.
package session

import (
	"context"
	"os"

	"github.com/minhyannv/commizard-go/pkg/commands"
	configpkg "github.com/minhyannv/commizard-go/pkg/config"
	"github.com/minhyannv/commizard-go/pkg/generate"
	"github.com/minhyannv/commizard-go/pkg/httpx"
	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
	"github.com/minhyannv/commizard-go/pkg/models"
	"github.com/minhyannv/commizard-go/pkg/ollama"
	"github.com/minhyannv/commizard-go/pkg/openaicompat"
	"github.com/minhyannv/commizard-go/pkg/output"
	"github.com/minhyannv/commizard-go/pkg/vcs"
)

// Backend is an inference server able to manage models and generate text.
type Backend interface {
	models.Backend
	generate.Generator
	Ping(ctx context.Context) bool
}

// Session holds the state shared by the REPL commands.
type Session struct {
	Config     configpkg.Config
	Printer    *output.Printer
	Logger     loggerpkg.Logger
	Git        *vcs.Git
	Backend    Backend
	Models     *models.Registry
	Engine     *generate.Engine
	Dispatcher *commands.Dispatcher
}

// New wires a session from cfg.
func New(cfg configpkg.Config, opts ...Option) *Session {
	cfg = configpkg.Normalize(cfg)
	deps := sessionDeps{logger: loggerpkg.NopLogger{}, out: os.Stdout}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}

	loggerpkg.Debug(deps.logger, "session init", map[string]any{
		"provider":  cfg.Provider,
		"base_url":  cfg.BaseURL,
		"rollback":  cfg.RollbackOnLoadFailure,
		"wrapWidth": cfg.WrapWidth,
	})

	backend := deps.backend
	if backend == nil {
		backend = newBackend(cfg, deps.logger)
	}
	git := deps.git
	if git == nil {
		git = vcs.New("", deps.logger)
	}

	printer := output.New(deps.out)
	registry := models.New(backend,
		models.WithLogger(deps.logger),
		models.WithRollback(cfg.RollbackOnLoadFailure),
	)
	engine := generate.New(generate.Config{
		Diff:      git,
		Generator: backend,
		Models:    registry,
		Printer:   printer,
		Logger:    deps.logger,
		Template:  cfg.PromptTemplate,
		Width:     cfg.WrapWidth,
	})
	dispatcher := commands.New(commands.Deps{
		VCS:       git,
		Models:    registry,
		Engine:    engine,
		Clipboard: deps.clipboard,
		Printer:   printer,
		Logger:    deps.logger,
	})

	return &Session{
		Config:     cfg,
		Printer:    printer,
		Logger:     deps.logger,
		Git:        git,
		Backend:    backend,
		Models:     registry,
		Engine:     engine,
		Dispatcher: dispatcher,
	}
}

func newBackend(cfg configpkg.Config, logger loggerpkg.Logger) Backend {
	hc := httpx.New(
		httpx.WithLogger(logger),
		httpx.WithMaxRedirects(cfg.MaxRedirects),
	)
	if cfg.Provider == configpkg.ProviderOpenAI {
		return openaicompat.New(openaicompat.Config{
			BaseURL:     cfg.BaseURL,
			APIKey:      cfg.APIKey,
			ListTimeout: cfg.ListTimeout,
			HTTPClient:  hc.HTTPClient(),
			Logger:      logger,
		})
	}
	return ollama.New(cfg.BaseURL, hc,
		ollama.WithLogger(logger),
		ollama.WithListTimeout(cfg.ListTimeout),
	)
}

// Dispatch runs one input line.
func (s *Session) Dispatch(ctx context.Context, line string) commands.Status {
	return s.Dispatcher.Dispatch(ctx, line)
}

// Close releases the selected model on the server.
func (s *Session) Close(ctx context.Context) {
	if s.Models.Selected() == "" {
		return
	}
	res := s.Models.Unload(ctx)
	if !res.OK() {
		loggerpkg.Warn(s.Logger, "unload on exit", map[string]any{"code": res.Code})
	}
}
