// soectl is the operator CLI of the engine: historian ingest, SOE
// extraction and code table dumps.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
