// Package main is the entry point for the CTK CLI.
package main

import (
	"os"

	"github.com/f3rmion/ctk/cmd/ctk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
