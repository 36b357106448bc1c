// Package cmd implements the CLI commands for the merkle tool.
package cmd

import (
	"github.com/vpaliy/merklelib/cli"
)

// RootCmd represents the base "merkle" command when called without any subcommands.
var RootCmd = cli.NewRootCommand("merkle",
	"Merkle hash tree toolkit in Go",
	`
 __   __  _______  ______    ___   _  ___      _______
|  |_|  ||       ||    _ |  |   | | ||   |    |       |
|       ||    ___||   | ||  |   |_| ||   |    |    ___|
|       ||   |___ |   |_||_ |      _||   |    |   |___
|       ||    ___||    __  ||     |_ |   |___ |    ___|
| ||_|| ||   |___ |   |  | ||    _  ||       ||   |___
|_|   |_||_______||___|  |_||___| |_||_______||_______|
`)
