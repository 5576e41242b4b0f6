// Command tagctl manages the tag store from a terminal: list and create tags,
// export them, or serve the tag tools to MCP clients over stdio.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", formatError(err))
		os.Exit(1)
	}
}
