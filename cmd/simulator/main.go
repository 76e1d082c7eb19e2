package main

import (
	"os"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/cmd/simulator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
