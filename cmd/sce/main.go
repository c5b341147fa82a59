package main

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmjak/simple-code-editor/internal/cli"
	"github.com/kmjak/simple-code-editor/internal/tui"
	"github.com/kmjak/simple-code-editor/internal/ui"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}

	// A bad directory argument falls back to the picker instead of dying.
	if cfg.Root != "" {
		if info, statErr := os.Stat(cfg.Root); statErr != nil || !info.IsDir() {
			ui.Warning("not a directory: %s", cfg.Root)
			cfg.Root = ""
		}
	}

	// Diagnostics go to a file when requested; never to the terminal the
	// fullscreen program owns.
	if os.Getenv("SCE_DEBUG") != "" {
		f, err := tea.LogToFile("sce-debug.log", "sce")
		if err != nil {
			ui.Error("could not open debug log: %v", err)
			os.Exit(1)
		}
		defer f.Close()
		ui.Info("debug log: sce-debug.log")
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(tui.New(cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		ui.Error("Error running program: %v", err)
		os.Exit(1)
	}
	if m, ok := final.(tui.Model); ok && m.FatalErr() != nil {
		ui.Error("%v", m.FatalErr())
		os.Exit(1)
	}
}
