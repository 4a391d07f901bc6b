package main

import (
	"os"

	"github.com/ktlens/ktlens/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
