package commands

import "context"

type generateCommand struct {
	deps Deps
}

func (c *generateCommand) names() []Name { return []Name{NameGen, NameGenerate} }

func (c *generateCommand) usage() string { return "gen | generate" }

func (c *generateCommand) summary() string {
	return "generate a commit message from the current diff"
}

func (c *generateCommand) execute(ctx context.Context, _ []string) {
	c.deps.Engine.Generate(ctx)
}

type clearCommand struct {
	deps Deps
}

func (c *clearCommand) names() []Name { return []Name{NameClear, NameCls} }

func (c *clearCommand) usage() string { return "clear | cls" }

func (c *clearCommand) summary() string { return "clear the terminal" }

func (c *clearCommand) execute(context.Context, []string) {
	c.deps.Clear(c.deps.Printer.Writer())
}
