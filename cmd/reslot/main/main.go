package main

import (
	"os"

	"github.com/arthur-debert/reslot/cmd/reslot"
)

func main() {
	rootCmd := reslot.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		reslot.PrintError(rootCmd, err)
		os.Exit(1)
	}
}
