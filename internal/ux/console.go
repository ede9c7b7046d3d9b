package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Console writes report lines to stdout and stderr. Styling is applied only
// when the destination supports it, so piped output stays byte-exact.
type Console struct {
	Out io.Writer
	Err io.Writer

	success lipgloss.Style
	failure lipgloss.Style
	notice  lipgloss.Style
	plain   bool
}

// NewConsole binds styles to each writer's terminal capabilities.
func NewConsole(out, errOut io.Writer, noColor bool) *Console {
	outR := lipgloss.NewRenderer(out)
	errR := lipgloss.NewRenderer(errOut)
	return &Console{
		Out:     out,
		Err:     errOut,
		success: outR.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failure: errR.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		notice:  errR.NewStyle().Foreground(lipgloss.Color("3")),
		plain:   noColor,
	}
}

func (c *Console) styled(st lipgloss.Style, s string) string {
	if c.plain {
		return s
	}
	return st.Render(s)
}

// Plain writes an unstyled line to stdout.
func (c *Console) Plain(format string, args ...any) {
	fmt.Fprintln(c.Out, fmt.Sprintf(format, args...))
}

// Success writes a highlighted line to stdout.
func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.Out, c.styled(c.success, fmt.Sprintf(format, args...)))
}

// Failure writes a highlighted line to stderr.
func (c *Console) Failure(format string, args ...any) {
	fmt.Fprintln(c.Err, c.styled(c.failure, fmt.Sprintf(format, args...)))
}

// Notice writes a line to stderr.
func (c *Console) Notice(format string, args ...any) {
	fmt.Fprintln(c.Err, c.styled(c.notice, fmt.Sprintf(format, args...)))
}

// Hint writes an unstyled line to stderr.
func (c *Console) Hint(format string, args ...any) {
	fmt.Fprintln(c.Err, fmt.Sprintf(format, args...))
}

// Raw copies captured process output to stderr unchanged.
func (c *Console) Raw(s string) {
	if s == "" {
		return
	}
	fmt.Fprint(c.Err, s)
	if !strings.HasSuffix(s, "\n") {
		fmt.Fprintln(c.Err)
	}
}
