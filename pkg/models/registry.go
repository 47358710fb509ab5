// Package models tracks the models offered by the inference server and the
// one currently selected for generation.
package models

import (
	"context"
	"errors"
	"slices"

	"github.com/minhyannv/commizard-go/pkg/httpx"
	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
)

var (
	// ErrNotDiscovered means the model list has not been fetched successfully.
	ErrNotDiscovered = errors.New("model list unknown")
	// ErrModelNotFound means the requested model is not in the known list.
	ErrModelNotFound = errors.New("model not found")
)

// Backend is the server side of model management.
type Backend interface {
	ListModels(ctx context.Context) ([]string, httpx.Result, error)
	Load(ctx context.Context, model string) (bool, httpx.Result)
	Unload(ctx context.Context, model string) httpx.Result
}

// Registry holds discovery and selection state for one session.
type Registry struct {
	backend  Backend
	logger   loggerpkg.Logger
	rollback bool

	available []string
	known     bool
	selected  string
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithRollback restores the previous selection when a load is not
// confirmed. Off by default: the requested model stays selected.
func WithRollback(enabled bool) Option {
	return func(r *Registry) {
		r.rollback = enabled
	}
}

// New builds an empty registry.
func New(backend Backend, opts ...Option) *Registry {
	r := &Registry{backend: backend, logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Discover refreshes the model list. On failure the list becomes unknown and
// the result tells the caller why.
func (r *Registry) Discover(ctx context.Context) ([]string, httpx.Result) {
	names, res, err := r.backend.ListModels(ctx)
	if err != nil || !res.OK() {
		r.available, r.known = nil, false
		fields := map[string]any{"code": res.Code}
		if err != nil {
			fields["error"] = err.Error()
		}
		loggerpkg.Debug(r.logger, "model discovery failed", fields)
		return nil, res
	}
	r.available, r.known = slices.Clone(names), true
	loggerpkg.Debug(r.logger, "models discovered", map[string]any{"count": len(names)})
	return slices.Clone(names), res
}

// Available returns the last discovered list and whether it is known. A
// known list may be empty.
func (r *Registry) Available() ([]string, bool) {
	return slices.Clone(r.available), r.known
}

// Selected returns the selected model, or "" when none is.
func (r *Registry) Selected() string {
	return r.selected
}

// Select makes name the current model and asks the server to load it. The
// selection is recorded before the load is sent; loaded reports whether the
// server confirmed it. When another model was selected it is unloaded once
// the new selection stands; a rolled back switch leaves it loaded.
func (r *Registry) Select(ctx context.Context, name string) (bool, httpx.Result, error) {
	if !r.known {
		return false, httpx.Result{}, ErrNotDiscovered
	}
	if !slices.Contains(r.available, name) {
		return false, httpx.Result{}, ErrModelNotFound
	}

	previous := r.selected
	r.selected = name
	loaded, res := r.backend.Load(ctx, name)
	if !loaded && r.rollback {
		r.selected = previous
	}
	loggerpkg.Debug(r.logger, "model load", map[string]any{
		"model":    name,
		"loaded":   loaded,
		"code":     res.Code,
		"selected": r.selected,
	})

	if previous != "" && previous != name && r.selected == name {
		unload := r.backend.Unload(ctx, previous)
		if !unload.OK() {
			loggerpkg.Warn(r.logger, "unload previous model", map[string]any{"model": previous, "code": unload.Code})
		}
	}
	return loaded, res, nil
}

// Unload releases the selected model on the server and clears the selection
// whatever the server answers.
func (r *Registry) Unload(ctx context.Context) httpx.Result {
	if r.selected == "" {
		return httpx.Result{}
	}
	name := r.selected
	r.selected = ""
	res := r.backend.Unload(ctx, name)
	loggerpkg.Debug(r.logger, "model unload", map[string]any{"model": name, "code": res.Code})
	return res
}
