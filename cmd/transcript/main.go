package main

import (
	"os"

	"github.com/JonaxDevelopment/discord-transcript-next/cmd/transcript/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.OutputError("%v", err)
		os.Exit(1)
	}
}
