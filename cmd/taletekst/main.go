package main

import (
	"os"

	"github.com/msto63/taletekst/cmd/taletekst/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
