package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/reslot/cmd/reslot"
	"github.com/arthur-debert/reslot/internal/version"
)

func main() {
	rootCmd := reslot.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "RESLOT",
		Section: "1",
		Source:  "reslot " + version.Version,
		Manual:  "reslot manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
