package main

import (
	"os"

	"github.com/tatianab/char-sheet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
