package main

import (
	"os"

	"github.com/pdro-dev/wheelscreener/cmd/wheelscreener/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
