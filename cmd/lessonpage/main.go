// Command lessonpage classifies lesson pages into typed content sections.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/lessonpage/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
