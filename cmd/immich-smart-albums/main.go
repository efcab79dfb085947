// Package main is the entry point for the immich-smart-albums CLI.
package main

import (
	"os"

	"github.com/tahnau/immich-smart-albums/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
