package main

import (
	"os"

	"github.com/vfg2006/ads-report-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
