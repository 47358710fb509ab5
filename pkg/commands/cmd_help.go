package commands

import (
	"context"
	"fmt"
	"strings"
)

const usageColumn = 26

type helpCommand struct {
	dispatcher *Dispatcher
}

func (c *helpCommand) names() []Name { return []Name{NameHelp} }

func (c *helpCommand) usage() string { return "help [command]" }

func (c *helpCommand) summary() string { return "show commands, or details for one command" }

func (c *helpCommand) execute(_ context.Context, args []string) {
	printer := c.dispatcher.deps.Printer
	if len(args) > 0 {
		name := Name(args[0])
		if name == NameExit || name == NameQuit {
			printer.Plain(helpLine("exit | quit", "unload the model and leave"))
			return
		}
		cmd, ok := c.dispatcher.registry[name]
		if !ok {
			printer.Error(fmt.Sprintf("Unknown command: %s", args[0]))
			return
		}
		printer.Plain(helpLine(cmd.usage(), cmd.summary()))
		return
	}

	printer.Plain("Commands:")
	for _, cmd := range c.dispatcher.ordered {
		printer.Plain(helpLine(cmd.usage(), cmd.summary()))
	}
	printer.Plain(helpLine("exit | quit", "unload the model and leave"))
}

func helpLine(usage, summary string) string {
	pad := usageColumn - len(usage)
	if pad < 1 {
		pad = 1
	}
	return "  " + usage + strings.Repeat(" ", pad) + summary
}
