package main

import (
	"os"

	"github.com/specdoc/specdoc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
