// Package output renders user-facing messages.
package output

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"
)

// Printer writes styled messages to one writer. Colors are only emitted when
// the writer is a terminal.
type Printer struct {
	out io.Writer

	success   lipgloss.Style
	failure   lipgloss.Style
	warning   lipgloss.Style
	generated lipgloss.Style
	banner    lipgloss.Style
}

// New builds a printer for out.
func New(out io.Writer) *Printer {
	if out == nil {
		out = io.Discard
	}
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:       out,
		success:   r.NewStyle().Foreground(lipgloss.Color("2")),
		failure:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warning:   r.NewStyle().Foreground(lipgloss.Color("3")),
		generated: r.NewStyle().Foreground(lipgloss.Color("4")),
		banner: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("14")).
			Padding(0, 1),
	}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) Success(msg string) {
	p.line(p.success.Render(msg))
}

func (p *Printer) Error(msg string) {
	p.line(p.failure.Render("Error: " + msg))
}

func (p *Printer) Warning(msg string) {
	p.line(p.warning.Render("Warning: " + msg))
}

// Generated prints a generated commit message.
func (p *Printer) Generated(msg string) {
	p.line(p.generated.Render(msg))
}

// Plain prints msg unstyled.
func (p *Printer) Plain(msg string) {
	p.line(msg)
}

// Banner prints text inside a rounded border.
func (p *Printer) Banner(text string) {
	p.line(p.banner.Render(text))
}

func (p *Printer) line(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}

// Wrap breaks text at word boundaries so no line exceeds width, keeping
// existing line breaks. Words longer than width are left intact.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.WrapString(text, uint(width))
}

// Clear clears the terminal, falling back to ANSI escapes when the platform
// command is unavailable.
func Clear(out io.Writer) {
	name := "clear"
	args := []string{}
	if runtime.GOOS == "windows" {
		name = "cmd"
		args = []string{"/c", "cls"}
	}
	if _, err := exec.LookPath(name); err == nil {
		cmd := exec.Command(name, args...)
		cmd.Stdout = out
		cmd.Stderr = io.Discard
		if out == os.Stdout {
			cmd.Stdin = os.Stdin
		}
		if cmd.Run() == nil {
			return
		}
	}
	_, _ = io.WriteString(out, "\033[2J\033[H")
}
