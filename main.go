package main

import (
	"os"

	"github.com/feynlearn/feynlearn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
