package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/minhyannv/commizard-go/pkg/httpx"
	"github.com/minhyannv/commizard-go/pkg/ollama"
)

const listFailedMessage = "failed to list available local AI models. Is ollama running?"

type startCommand struct {
	deps Deps
}

func (c *startCommand) names() []Name { return []Name{NameStart} }

func (c *startCommand) usage() string { return "start <model>" }

func (c *startCommand) summary() string { return "load a local model and use it for generation" }

func (c *startCommand) execute(ctx context.Context, args []string) {
	if len(args) == 0 {
		c.deps.Printer.Error("Please specify a model.")
		return
	}
	name := args[0]

	available, known := c.deps.Models.Available()
	if !known {
		c.deps.Models.Discover(ctx)
		available, known = c.deps.Models.Available()
	}
	if !known {
		c.deps.Printer.Error(listFailedMessage)
		return
	}
	if !slices.Contains(available, name) {
		c.deps.Printer.Error(fmt.Sprintf("%s Not found.", name))
		return
	}

	loaded, res, err := c.deps.Models.Select(ctx, name)
	switch {
	case err != nil:
		c.deps.Printer.Error(err.Error())
	case loaded:
		c.deps.Printer.Success(fmt.Sprintf("%s loaded.", name))
	default:
		reportFailure(c.deps, res, fmt.Sprintf("The server did not confirm loading %s.", name))
	}
}

type listCommand struct {
	deps Deps
}

func (c *listCommand) names() []Name { return []Name{NameList} }

func (c *listCommand) usage() string { return "list" }

func (c *listCommand) summary() string { return "list the models installed on the server" }

func (c *listCommand) execute(ctx context.Context, _ []string) {
	c.deps.Models.Discover(ctx)
	available, known := c.deps.Models.Available()
	switch {
	case !known:
		c.deps.Printer.Error(listFailedMessage)
	case len(available) == 0:
		c.deps.Printer.Warning("No local AI models found.")
	default:
		for _, name := range available {
			c.deps.Printer.Plain(name)
		}
	}
}

// reportFailure prints the reason a request did not succeed. fallback is
// used when the server answered 2xx but the outcome was still negative.
func reportFailure(deps Deps, res httpx.Result, fallback string) {
	switch {
	case res.IsError():
		deps.Printer.Error(res.ErrMessage())
	case res.Code != 0 && !res.OK():
		deps.Printer.Error(ollama.Classify(res.Code))
	default:
		deps.Printer.Warning(fallback)
	}
}
