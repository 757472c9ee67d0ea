// Command docqa ingests documents into a vector store and answers
// questions about them.
package main

import (
	"fmt"
	"os"

	"github.com/zioncloud/docqa/internal/adapters/driving/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
