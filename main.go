package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/weekplan/internal/plan"
	"github.com/sadopc/weekplan/internal/store"
	"github.com/sadopc/weekplan/internal/tui"
)

func main() {
	configDir, err := store.DefaultConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening data store: %v\n", err)
		os.Exit(1)
	}

	engine := plan.New(s)
	// Write out any edits still inside the debounce window.
	defer engine.Flush()

	app := tui.NewApp(engine, s)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
