// Package main implements the verigraph CLI.
// It turns annotated source functions into control flow graphs and
// enumerates the verification paths between annotation points.
package main

import (
	"os"

	"github.com/verigraph/verigraph/cmd/verigraph/commands"
)

var version = "dev"

func main() {
	commands.RootCmd.Version = version
	commands.RootCmd.SetVersionTemplate(`verigraph version {{.Version}}
`)

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
