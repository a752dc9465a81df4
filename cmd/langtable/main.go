package main

import (
	"os"

	"github.com/langtable/langtable/cmd/commands"
	"github.com/langtable/langtable/internal/cli"
)

// Version is set during build with -ldflags
var version = "dev"

func main() {
	root := commands.NewRootCommand(version)
	cmd, err := root.ExecuteC()
	if err != nil {
		cli.PrintError("%s", commands.ErrorText(cmd, err))
		os.Exit(1)
	}
}
