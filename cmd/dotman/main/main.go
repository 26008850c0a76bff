package main

import (
	"os"

	"github.com/arthur-debert/dotman/cmd/dotman"
)

func main() {
	os.Exit(dotman.Execute())
}
