// Package generate turns the current diff into a commit message.
package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/minhyannv/commizard-go/pkg/httpx"
	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
	"github.com/minhyannv/commizard-go/pkg/ollama"
	"github.com/minhyannv/commizard-go/pkg/output"
)

// DiffSource yields the changes to describe.
type DiffSource interface {
	Diff(ctx context.Context) (string, error)
}

// Generator produces a completion for prompt. The error is set only when a
// successful response carried no usable text.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, httpx.Result, error)
}

// ModelSource names the model to generate with; "" means none is selected.
type ModelSource interface {
	Selected() string
}

// Outcome reports how a generation attempt ended.
type Outcome int

const (
	OutcomeGenerated Outcome = iota
	OutcomeNoChanges
	OutcomeNoModel
	OutcomeRequestFailed
	OutcomeUnexpected
)

// Engine owns the last generated message.
type Engine struct {
	diff     DiffSource
	gen      Generator
	models   ModelSource
	printer  *output.Printer
	logger   loggerpkg.Logger
	template string
	width    int

	message string
	ok      bool
}

// Config holds the engine dependencies.
type Config struct {
	Diff      DiffSource
	Generator Generator
	Models    ModelSource
	Printer   *output.Printer
	Logger    loggerpkg.Logger
	// Template defaults to DefaultTemplate.
	Template string
	// Width defaults to 72.
	Width int
}

// New builds an engine.
func New(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = loggerpkg.NopLogger{}
	}
	if cfg.Printer == nil {
		cfg.Printer = output.New(nil)
	}
	if cfg.Width <= 0 {
		cfg.Width = 72
	}
	return &Engine{
		diff:     cfg.Diff,
		gen:      cfg.Generator,
		models:   cfg.Models,
		printer:  cfg.Printer,
		logger:   cfg.Logger,
		template: cfg.Template,
		width:    cfg.Width,
	}
}

// Message returns the last generated message.
func (e *Engine) Message() (string, bool) {
	return e.message, e.ok
}

// Generate builds the prompt from the current diff, asks the selected model
// for a message and stores it. Every failure is reported to the user; none is
// returned.
func (e *Engine) Generate(ctx context.Context) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			loggerpkg.Error(e.logger, "generation panic", map[string]any{"panic": fmt.Sprint(r)})
			e.printer.Error(fmt.Sprintf("Unexpected error: %v", r))
			outcome = OutcomeUnexpected
		}
	}()

	diff, err := e.diff.Diff(ctx)
	if err != nil {
		e.printer.Error(fmt.Sprintf("Unexpected error: %v", err))
		return OutcomeUnexpected
	}
	if strings.TrimSpace(diff) == "" {
		e.printer.Warning("No changes to the repository.")
		return OutcomeNoChanges
	}

	model := e.models.Selected()
	if model == "" {
		e.printer.Warning("No model selected. Use 'start <model>' first.")
		return OutcomeNoModel
	}

	prompt := BuildPrompt(e.template, diff)
	loggerpkg.Debug(e.logger, "generate", map[string]any{"model": model, "prompt_bytes": len(prompt)})
	text, res, err := e.gen.Generate(ctx, model, prompt)
	switch {
	case res.IsError():
		e.printer.Error(res.ErrMessage())
		return OutcomeRequestFailed
	case !res.OK():
		e.printer.Error(ollama.Classify(res.Code))
		return OutcomeRequestFailed
	case err != nil:
		e.printer.Error(fmt.Sprintf("Unexpected error: %v", err))
		return OutcomeUnexpected
	}

	wrapped := output.Wrap(strings.TrimSpace(text), e.width)
	e.message, e.ok = wrapped, true
	e.printer.Generated(wrapped)
	return OutcomeGenerated
}
