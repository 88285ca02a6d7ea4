package main

import (
	"os"

	"github.com/linear-view/linview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
