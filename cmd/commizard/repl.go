package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minhyannv/commizard-go/pkg/commands"
	loggerpkg "github.com/minhyannv/commizard-go/pkg/logger"
	"github.com/minhyannv/commizard-go/pkg/session"
)

const promptText = "CommiZard> "

// runREPL reads commands until exit, quit or end of input and returns the
// process exit code.
func runREPL(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) int {
	if out == nil {
		out = io.Discard
	}
	loggerpkg.Debug(sess.Logger, "repl start", nil)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		_, _ = fmt.Fprint(out, promptText)
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			break
		}

		line := scanner.Text()
		status := sess.Dispatch(ctx, line)
		if status == commands.StatusQuit {
			break
		}
		if status == commands.StatusUnrecognized {
			name := strings.Fields(line)[0]
			sess.Printer.Error(fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", name))
		}
	}

	code := 0
	if err := scanner.Err(); err != nil {
		sess.Printer.Error(fmt.Sprintf("read input: %v", err))
		code = 1
	}
	sess.Close(ctx)
	_, _ = fmt.Fprintln(out, "Goodbye!")
	return code
}
