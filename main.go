package main

import (
	"os"

	"github.com/skillpulse/skillpulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
