package main

import (
	"os"

	"github.com/kotoedoff/zenith/cmd/zen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
