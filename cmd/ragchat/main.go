// Package main provides the entry point for the ragchat CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/hyecheol/ragchat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
