package ui

import (
	"strings"
	"testing"
)

func TestPalette(t *testing.T) {
	p := NewPalette("#7D56F4", "#1DB954", "#FF0000", "#FFA500", "#626262")

	t.Run("StatusLine", func(t *testing.T) {
		if got := p.StatusLine(true, "credentials valid"); !strings.Contains(got, "✓ credentials valid") {
			t.Errorf("expected check mark line, got %q", got)
		}
		if got := p.StatusLine(false, "credentials rejected"); !strings.Contains(got, "✗ credentials rejected") {
			t.Errorf("expected cross line, got %q", got)
		}
	})

	t.Run("CredentialReport", func(t *testing.T) {
		got := p.CredentialReport(
			[]string{"client_id", "refresh_token"},
			map[string]bool{"client_id": true},
		)

		lines := strings.Split(got, "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d: %q", len(lines), got)
		}
		if !strings.HasPrefix(lines[0], "client_id: ") || !strings.Contains(lines[0], "loaded") {
			t.Errorf("unexpected first line %q", lines[0])
		}
		if !strings.HasPrefix(lines[1], "refresh_token: ") || !strings.Contains(lines[1], "missing") {
			t.Errorf("unexpected second line %q", lines[1])
		}
	})
}
