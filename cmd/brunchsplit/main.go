package main

import (
	"os"

	"github.com/mmynk/brunchsplit/cmd/brunchsplit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
