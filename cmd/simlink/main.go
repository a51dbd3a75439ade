package main

import (
	"os"

	"github.com/cardside/simlink/cmd/simlink/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
