// Package main is the entry point for the page2md CLI.
package main

import (
	"os"

	"github.com/Aias/page-to-markdown/cmd/page2md/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
