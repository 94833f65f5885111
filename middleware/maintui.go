package middleware

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/deemkeen/noticeboard/cli"
	"github.com/deemkeen/noticeboard/db"
	"github.com/deemkeen/noticeboard/ui"
	"github.com/deemkeen/noticeboard/util"
	"github.com/muesli/termenv"
)

func MainTui(conf *util.AppConfig) wish.Middleware {
	teaHandler := func(s ssh.Session) *tea.Program {
		// Check for CLI command first (non-interactive mode)
		if cmd := s.Command(); len(cmd) > 0 {
			handleCLI(s, cmd, conf)
			return nil // Don't start TUI
		}

		pty, _, active := s.Pty()
		if !active {
			wish.Println(s, "no active terminal, skipping")
			return nil
		}

		// Set the global color profile to ANSI256 for Docker compatibility
		lipgloss.SetColorProfile(termenv.ANSI256)

		m := ui.NewModel(conf, pty.Window.Width, pty.Window.Height)
		return tea.NewProgram(m, tea.WithFPS(60), tea.WithInput(s), tea.WithOutput(s), tea.WithAltScreen())
	}
	return bm.MiddlewareWithProgramHandler(teaHandler, termenv.ANSI256)
}

// handleCLI processes CLI commands in non-interactive mode
func handleCLI(s ssh.Session, cmd []string, conf *util.AppConfig) {
	handler := cli.NewHandler(s, db.GetDB(), conf)
	if err := handler.Execute(cmd); err != nil {
		// Error already printed by handler
		_ = s.Exit(1)
	}
}
