package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")

	titleStyle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted).Width(28)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4B5563")).
			Padding(0, 2)
)

// Printer writes styled lines for the operator.
type Printer struct {
	w      io.Writer
	format *Format
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, format *Format) *Printer {
	return &Printer{w: w, format: format}
}

// Format returns the locale formatting used by the printer.
func (p *Printer) Format() *Format {
	return p.format
}

// Title prints a section header.
func (p *Printer) Title(title string) {
	_, _ = fmt.Fprintln(p.w)
	_, _ = fmt.Fprintln(p.w, titleStyle.Render(title))
	_, _ = fmt.Fprintln(p.w, mutedStyle.Render(strings.Repeat("═", lipgloss.Width(title))))
}

// Success prints a success message.
func (p *Printer) Success(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, successStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (p *Printer) Warning(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, warningStyle.Render("⚠ ")+fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (p *Printer) Error(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Info prints an info message.
func (p *Printer) Info(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, infoStyle.Render("ℹ ")+fmt.Sprintf(format, args...))
}

// Field prints a label/value pair.
func (p *Printer) Field(label, value string) {
	_, _ = fmt.Fprintln(p.w, labelStyle.Render(label)+value)
}

// Bullet prints an indented list entry.
func (p *Printer) Bullet(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, mutedStyle.Render("  • ")+fmt.Sprintf(format, args...))
}

// Box prints lines inside a rounded border.
func (p *Printer) Box(lines ...string) {
	_, _ = fmt.Fprintln(p.w, boxStyle.Render(strings.Join(lines, "\n")))
}
