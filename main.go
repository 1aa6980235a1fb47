package main

import (
	"os"

	"github.com/link-foundation/deduplino/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
