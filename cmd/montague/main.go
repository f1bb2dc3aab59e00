package main

import (
	"os"

	"github.com/vic/montague/internal/cli"
	"github.com/vic/montague/internal/log"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Error("Error: %v", err)
		os.Exit(1)
	}
}
