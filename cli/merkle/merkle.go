// Executable merkle tree command-line tool. See README for
// usage instructions.
package main

import (
	"github.com/vpaliy/merklelib/cli"
	"github.com/vpaliy/merklelib/cli/merkle/internal/cmd"
)

func main() {
	cli.ExecuteRoot(cmd.RootCmd)
}
