package main

import (
	"os"

	"github.com/kbukum/aspen/cmd/aspenctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
