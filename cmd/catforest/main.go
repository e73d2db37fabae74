package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/ckrueger/catforest/internal/cli"
)

func main() {
	c := cli.New(os.Stderr, log.InfoLevel)
	if err := c.RootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
