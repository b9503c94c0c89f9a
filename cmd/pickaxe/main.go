package main

import (
	"os"

	"github.com/nbonventre/pickaxe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
