package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docsync/internal/core/domain"
	"github.com/custodia-labs/docsync/internal/core/ports/driven"
)

// Ensure Console implements the interface.
var _ driven.ProgressReporter = (*Console)(nil)

// Console colours.
var (
	colourAccent  = lipgloss.Color("#06B6D4")
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourWarning = lipgloss.Color("#F9E2AF")
	colourError   = lipgloss.Color("#F38BA8")
	colourMuted   = lipgloss.Color("#6C7086")
)

// Console writes pipeline progress for humans. Colour is only used when the
// writer is a terminal. Writes are serialised across workers.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer

	step    lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style
}

// NewConsole creates a console writing progress to out and failures to errOut.
func NewConsole(out, errOut io.Writer) *Console {
	outR := lipgloss.NewRenderer(out)
	errR := lipgloss.NewRenderer(errOut)
	return &Console{
		out:     out,
		errOut:  errOut,
		step:    outR.NewStyle().Foreground(colourAccent).Bold(true),
		success: outR.NewStyle().Foreground(colourSuccess),
		warn:    outR.NewStyle().Foreground(colourWarning),
		fail:    errR.NewStyle().Foreground(colourError).Bold(true),
		muted:   outR.NewStyle().Foreground(colourMuted),
	}
}

// Step announces a pipeline stage.
func (c *Console) Step(format string, args ...any) {
	c.line(c.out, c.step.Render("→")+" "+fmt.Sprintf(format, args...))
}

// Success reports a completed stage.
func (c *Console) Success(format string, args ...any) {
	c.line(c.out, c.success.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Warn reports a recoverable problem.
func (c *Console) Warn(format string, args ...any) {
	c.line(c.out, c.warn.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Progress reports completed out of total items for a phase.
func (c *Console) Progress(phase domain.Phase, completed, total int) {
	verb := "Processed"
	switch phase {
	case domain.PhaseFetch:
		verb = "Downloaded"
	case domain.PhaseUpload:
		verb = "Uploaded"
	}
	c.line(c.out, c.muted.Render(fmt.Sprintf("  %s %d/%d files...", verb, completed, total)))
}

// Fatal prints a single failure line to the error writer.
func (c *Console) Fatal(err error) {
	c.line(c.errOut, c.fail.Render("✗ "+err.Error()))
}

func (c *Console) line(w io.Writer, s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(w, s)
}
