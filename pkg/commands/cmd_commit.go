package commands

import (
	"context"
	"fmt"
	"strings"
)

type commitCommand struct {
	deps Deps
}

func (c *commitCommand) names() []Name { return []Name{NameCommit} }

func (c *commitCommand) usage() string { return "commit [head|title|body]" }

func (c *commitCommand) summary() string {
	return "commit the generated message (head/title: subject line only)"
}

func (c *commitCommand) execute(ctx context.Context, args []string) {
	msg, ok := c.deps.Engine.Message()
	if !ok || strings.TrimSpace(msg) == "" {
		c.deps.Printer.Warning("No commit message detected. Skipping.")
		return
	}
	if len(args) > 1 {
		c.deps.Printer.Error("Usage: " + c.usage())
		return
	}
	if len(args) == 1 {
		switch args[0] {
		case "head", "title":
			msg = subject(msg)
		case "body":
		default:
			c.deps.Printer.Error(fmt.Sprintf("Unknown commit option: %s", args[0]))
			return
		}
	}

	code, text := c.deps.VCS.Commit(ctx, msg)
	if code == 0 {
		c.deps.Printer.Success(text)
		return
	}
	c.deps.Printer.Warning(text)
}

func subject(msg string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(msg), "\n")
	return strings.TrimSpace(first)
}
