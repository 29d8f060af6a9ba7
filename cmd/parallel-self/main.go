package main

import (
	"os"

	"github.com/kaenlabs/parallel-self-simulator/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
