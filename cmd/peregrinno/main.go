// Package main provides the entry point for Peregrinno.
//
// Peregrinno is a personal task manager with a list view and a kanban
// board, built on Bubble Tea. Subcommands expose the same stores to scripts.
//
// Usage:
//
//	peregrinno [--data-dir DIR | --workspace NAME] [--backend file|sqlite|redis|memory]
//	peregrinno list|add|move|rm|categories|workspace ...
package main

import (
	"os"

	"github.com/peregrinno/todo/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
