// radlog - rAdvisor stat log interval checker
//
// radlog parses rAdvisor container stat logs and verifies that the
// collector sampled at its intended interval.
package main

import (
	"os"

	"github.com/radlog/radlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
