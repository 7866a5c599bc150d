package main

import (
	"os"

	"github.com/nunalabs/Astro-Shiba-Pop/cmd/astropop/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
