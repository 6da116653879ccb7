package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Default is the palette used by the CLI.
var Default = NewPalette("#7D56F4", "#1DB954", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

func (p *Palette) Title(s string) string { return p.title.Render(s) }
func (p *Palette) Ok(s string) string { return p.ok.Render(s) }
func (p *Palette) Err(s string) string { return p.err.Render(s) }
func (p *Palette) Warn(s string) string { return p.warn.Render(s) }
func (p *Palette) Help(s string) string { return p.help.Render(s) }

// StatusLine renders "✓ msg" or "✗ msg".
func (p *Palette) StatusLine(ok bool, msg string) string {
	if ok {
		return p.Ok("✓ " + msg)
	}
	return p.Err("✗ " + msg)
}

// CredentialReport renders one line per credential, "name: ✓ loaded" or "name: ✗ missing", in the given order.
func (p *Palette) CredentialReport(names []string, present map[string]bool) string {
	lines := make([]string, 0, len(names))
	for _, name := range names {
		if present[name] {
			lines = append(lines, fmt.Sprintf("%s: %s", name, p.Ok("✓ loaded")))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %s", name, p.Err("✗ missing")))
		}
	}
	return strings.Join(lines, "\n")
}
