package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/resiou/internal/cli"
)

var version = "v0.0.1-default"

func main() {
	root := cli.NewRootCommand()
	root.Version = version

	err := root.Execute()
	if err != nil {
		// Command errors were already reported through the output formatter.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	os.Exit(cli.GetExitCode(err))
}
