package main

import (
	"os"

	"github.com/arnab1811/rfs-tool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
