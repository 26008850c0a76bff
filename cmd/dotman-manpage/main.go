package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotman/cmd/dotman"
	"github.com/arthur-debert/dotman/internal/version"
)

func main() {
	rootCmd := dotman.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DOTMAN",
		Section: "1",
		Source:  "dotman " + version.Version,
		Manual:  "dotman manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
