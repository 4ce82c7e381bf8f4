package main

import (
	"os"

	"github.com/sisi-cmux/sisi/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
