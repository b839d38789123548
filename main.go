package main

import (
	"os"

	"github.com/albanobattistella/mecalin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
