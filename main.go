package main

import (
	"os"

	"github.com/ByLCY/truescale/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
