package cmd

import (
	"github.com/vpaliy/merklelib/cli"
)

var versionCmd = cli.NewVersionCommand("merkle")

func init() {
	RootCmd.AddCommand(versionCmd)
}
