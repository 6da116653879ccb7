// Package ui styles CLI status output with lipgloss.
//
// [Palette] renders titles, pass/fail lines and hints; [Default] is the palette used by the commands.
// [StatusLine] and [CredentialReport] build the lines printed by the check and serve commands.
package ui
