package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	onlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// getStatus renders "(email mode)" for the prompt.
func (a *App) getStatus() string {
	s := ""
	if u := a.store.Snapshot().User; u != nil && u.Email != "" {
		s = u.Email + " "
	}
	mode := a.mode()
	if mode == ModeOnline {
		s += onlineStyle.Render(string(mode))
	} else {
		s += dimStyle.Render(string(mode))
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {
	printlnFn(promptStyle.Render("Welcome to gophchat") + " (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
