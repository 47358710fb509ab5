package commands

import (
	"context"
	"fmt"

	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
)

type copyCommand struct {
	deps Deps
}

func (c *copyCommand) names() []Name { return []Name{NameCopy} }

func (c *copyCommand) usage() string { return "cp" }

func (c *copyCommand) summary() string { return "copy the generated message to the clipboard" }

func (c *copyCommand) execute(_ context.Context, _ []string) {
	msg, ok := c.deps.Engine.Message()
	if !ok {
		c.deps.Printer.Warning("No generated message found. Please run 'generate' first.")
		return
	}
	if err := c.deps.Clipboard.WriteAll(msg); err != nil {
		loggerpkg.Warn(c.deps.Logger, "clipboard write failed", map[string]any{"error": err.Error()})
		c.deps.Printer.Error(fmt.Sprintf("Could not copy to clipboard: %v", err))
		return
	}
	c.deps.Printer.Success("Copied to clipboard.")
}
