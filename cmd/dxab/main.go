package main

import (
	"os"

	"github.com/dxforce-site/abTestHeroBanner/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
