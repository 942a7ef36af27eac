package main

import (
	"os"

	"github.com/limejump/corona-analytics/cmd/corona/commands"
)

// main is the entry point for the corona CLI: go run ./cmd/corona [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
