package main

import (
	"os"

	"vgclean/cmd/vgclean/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
