// Command docvault indexes local documents into SQLite and answers
// questions over them with embedding search and a language model.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/docvault-cli/internal/adapters/driving/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
