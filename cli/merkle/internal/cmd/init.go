package cmd

import (
	"log"
	"path"

	"github.com/spf13/cobra"

	"github.com/vpaliy/merklelib/application"
	"github.com/vpaliy/merklelib/cli"
	"github.com/vpaliy/merklelib/crypto/hasher"
	"github.com/vpaliy/merklelib/crypto/sign"
	"github.com/vpaliy/merklelib/utils"
)

// initCmd represents the init command
var initCmd = cli.NewInitCommand("the merkle tool", initRunFunc)

func init() {
	RootCmd.AddCommand(initCmd)
	initCmd.Flags().StringP("dir", "d", ".", "Location of directory for storing generated files")
	initCmd.Flags().StringP("hasher", "a", hasher.SHA256Hasher, "Tree hasher to record in the configuration")
}

func initRunFunc(cmd *cobra.Command, args []string) {
	dir := cmd.Flag("dir").Value.String()
	hasherID := cmd.Flag("hasher").Value.String()
	mkConfig(dir, hasherID)
	mkSigningKey(dir)
}

func mkConfig(dir, hasherID string) {
	file := path.Join(dir, "config.toml")
	logger := &application.LoggerConfig{
		Environment: "development",
		Path:        "merkle.log",
	}
	conf := application.NewConfig(file, "toml", hasherID, "merkle.db",
		"sign.priv", "sign.pub", logger)
	if err := conf.Save(); err != nil {
		log.Println(err)
	}
}

func mkSigningKey(dir string) {
	sk, err := sign.GenerateKey(nil)
	if err != nil {
		log.Print(err)
		return
	}
	pk, _ := sk.Public()
	if err := utils.WriteFile(path.Join(dir, "sign.priv"), sk, 0600); err != nil {
		log.Println(err)
		return
	}
	if err := utils.WriteFile(path.Join(dir, "sign.pub"), pk, 0600); err != nil {
		log.Println(err)
		return
	}
}
