package main

import (
	"os"

	"github.com/rribeiro/folio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
