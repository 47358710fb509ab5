// Package commands maps REPL input lines to command handlers.
package commands

import (
	"context"
	"io"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/minhyannv/commizard-go/pkg/generate"
	"github.com/minhyannv/commizard-go/pkg/httpx"
	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
	"github.com/minhyannv/commizard-go/pkg/output"
)

// Name is a command word as typed at the prompt.
type Name string

const (
	NameCommit   Name = "commit"
	NameHelp     Name = "help"
	NameCopy     Name = "cp"
	NameStart    Name = "start"
	NameList     Name = "list"
	NameGen      Name = "gen"
	NameGenerate Name = "generate"
	NameClear    Name = "clear"
	NameCls      Name = "cls"
	NameExit     Name = "exit"
	NameQuit     Name = "quit"
)

// Status is the result of dispatching one line.
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusQuit
	StatusUnrecognized
)

type command interface {
	names() []Name
	usage() string
	summary() string
	execute(ctx context.Context, args []string)
}

// Committer records a commit and reports git's exit code and output.
type Committer interface {
	Commit(ctx context.Context, message string) (int, string)
}

// ModelRegistry is the model state the start and list commands operate on.
type ModelRegistry interface {
	Discover(ctx context.Context) ([]string, httpx.Result)
	Available() ([]string, bool)
	Selected() string
	Select(ctx context.Context, name string) (bool, httpx.Result, error)
}

// MessageEngine generates and holds the commit message.
type MessageEngine interface {
	Generate(ctx context.Context) generate.Outcome
	Message() (string, bool)
}

// Clipboard receives copied messages.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Deps are the collaborators shared by all handlers.
type Deps struct {
	VCS       Committer
	Models    ModelRegistry
	Engine    MessageEngine
	Clipboard Clipboard
	Printer   *output.Printer
	Logger    loggerpkg.Logger
	// Clear defaults to output.Clear.
	Clear func(io.Writer)
}

// Dispatcher owns the command table.
type Dispatcher struct {
	registry map[Name]command
	ordered  []command
	deps     Deps
}

// New builds a dispatcher with every built-in command registered.
func New(deps Deps) *Dispatcher {
	if deps.Logger == nil {
		deps.Logger = loggerpkg.NopLogger{}
	}
	if deps.Printer == nil {
		deps.Printer = output.New(nil)
	}
	if deps.Clipboard == nil {
		deps.Clipboard = SystemClipboard{}
	}
	if deps.Clear == nil {
		deps.Clear = output.Clear
	}

	d := &Dispatcher{
		registry: make(map[Name]command),
		deps:     deps,
	}
	d.register(&commitCommand{deps: deps})
	d.register(&helpCommand{dispatcher: d})
	d.register(&copyCommand{deps: deps})
	d.register(&startCommand{deps: deps})
	d.register(&listCommand{deps: deps})
	d.register(&generateCommand{deps: deps})
	d.register(&clearCommand{deps: deps})
	return d
}

func (d *Dispatcher) register(cmd command) {
	for _, name := range cmd.names() {
		d.registry[name] = cmd
	}
	d.ordered = append(d.ordered, cmd)
}

// Dispatch runs the command named by the first word of line. Unrecognized
// input is reported through the status only; printing is left to the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) Status {
	line = strings.TrimSpace(line)
	if line == "" {
		return StatusEmpty
	}
	if line == string(NameExit) || line == string(NameQuit) {
		return StatusQuit
	}

	fields := strings.Fields(line)
	cmd, ok := d.registry[Name(fields[0])]
	if !ok {
		loggerpkg.Debug(d.deps.Logger, "unrecognized command", map[string]any{"command": fields[0]})
		return StatusUnrecognized
	}
	loggerpkg.Debug(d.deps.Logger, "dispatch", map[string]any{"command": fields[0], "args": fields[1:]})
	cmd.execute(ctx, fields[1:])
	return StatusOK
}

// Names lists every accepted command word, aliases included.
func (d *Dispatcher) Names() []Name {
	names := make([]Name, 0, len(d.registry)+2)
	for _, cmd := range d.ordered {
		names = append(names, cmd.names()...)
	}
	return append(names, NameExit, NameQuit)
}
