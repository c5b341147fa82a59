package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Root       string // optional directory to open, skipping the picker
	ShowHidden bool
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	pflag.BoolVarP(&cfg.ShowHidden, "all", "a", false, "Include hidden (dot-prefixed) files and directories.")

	pflag.Usage = func() {
		fmt.Println("Usage: sce [flags] [directory]")
		fmt.Println("\nBrowse a directory tree and edit text files in the terminal.")
		fmt.Println("Without a directory argument, a picker opens first.")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	switch pflag.NArg() {
	case 0:
	case 1:
		cfg.Root = pflag.Arg(0)
	default:
		return nil, fmt.Errorf("error: at most one directory argument, got %d", pflag.NArg())
	}

	return cfg, nil
}
