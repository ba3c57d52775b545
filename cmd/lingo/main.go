package main

import (
	"os"

	"github.com/padwhen/language-learning-app/cmd/lingo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
