package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
