package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vpaliy/merklelib/application"
	"github.com/vpaliy/merklelib/cli"
	"github.com/vpaliy/merklelib/crypto/hasher"
	_ "github.com/vpaliy/merklelib/crypto/hasher/blake3"
	_ "github.com/vpaliy/merklelib/crypto/hasher/sha3"
	"github.com/vpaliy/merklelib/format"
	"github.com/vpaliy/merklelib/kv/leveldbkv"
	"github.com/vpaliy/merklelib/merkletree"
	"github.com/vpaliy/merklelib/utils"
)

// runCmd represents the run command
var runCmd = cli.NewRunCommand("the merkle tool", run)

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("config", "c", "config.toml", "Path to the configuration file")
	runCmd.Flags().StringP("input", "i", "", "Path to a file with one tree item per line")
	runCmd.Flags().StringP("proof", "p", "", "Item to produce and verify an audit proof for")
	runCmd.Flags().BoolP("beautify", "b", false, "Print an ASCII drawing of the tree")
	runCmd.Flags().StringP("export", "e", "", "Export the tree as JSON to the given file")
	runCmd.Flags().Bool("publish", false, "Sign the tree head and append it to the root log")
	runCmd.Flags().Bool("audit", false, "Audit the root log against the tree")
}

func run(cmd *cobra.Command, args []string) {
	confPath := cmd.Flag("config").Value.String()
	conf := &application.Config{}
	if err := conf.Load(confPath, "toml"); err != nil {
		log.Fatal(err)
	}
	logger := application.NewLogger(conf.Logger)

	th, err := hasher.Hasher(conf.Hasher)
	if err != nil {
		logger.Fatal(err.Error(), "hasher", conf.Hasher)
	}

	inputPath := cmd.Flag("input").Value.String()
	if inputPath == "" {
		logger.Fatal("No input file given")
	}
	items, err := readItems(inputPath)
	if err != nil {
		logger.Fatal(err.Error(), "input", inputPath)
	}

	tree := merkletree.New(th, items...)
	logger.Info("Built tree",
		"hasher", th.ID(),
		"leaves", tree.Len(),
		"root", tree.MerkleRoot())

	if target := cmd.Flag("proof").Value.String(); target != "" {
		proveItem(logger, tree, []byte(target))
	}

	if beautify, _ := strconv.ParseBool(cmd.Flag("beautify").Value.String()); beautify {
		format.Beautify(os.Stdout, tree)
	}
	if exportPath := cmd.Flag("export").Value.String(); exportPath != "" {
		if err := format.Export(tree, exportPath); err != nil {
			logger.Error(err.Error(), "export", exportPath)
		} else {
			logger.Info("Exported tree", "export", exportPath)
		}
	}

	publish, _ := strconv.ParseBool(cmd.Flag("publish").Value.String())
	audit, _ := strconv.ParseBool(cmd.Flag("audit").Value.String())
	if publish || audit {
		rootLog(logger, conf, tree, publish, audit)
	}
}

// readItems loads tree items from the given file, one per line.
// Blank lines are skipped.
func readItems(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var items [][]byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			items = append(items, []byte(line))
		}
	}
	return items, scanner.Err()
}

func proveItem(logger *application.Logger, tree *merkletree.MerkleTree,
	target []byte) {
	proof := tree.GetProof(target)
	if proof.Len() == 0 && tree.Len() > 1 {
		logger.Warn("Item is not in the tree", "item", string(target))
		return
	}
	if !tree.VerifyLeafInclusion(target, proof) {
		logger.Error("Proof failed to verify", "item", string(target))
		return
	}
	logger.Info("Proof verified", "item", string(target), "nodes", proof.Len())
	out, err := json.MarshalIndent(proof, "", "  ")
	if err != nil {
		logger.Error(err.Error())
		return
	}
	fmt.Println(string(out))
}

func rootLog(logger *application.Logger, conf *application.Config,
	tree *merkletree.MerkleTree, publish, audit bool) {
	db, err := leveldbkv.OpenDB(utils.ResolvePath(conf.DBPath, conf.GetPath()))
	if err != nil {
		logger.Fatal(err.Error(), "db", conf.DBPath)
	}
	defer db.Close()

	pk, err := application.LoadSigningPubKey(conf.VerifyKeyPath, conf.GetPath())
	if err != nil {
		logger.Fatal(err.Error())
	}
	sk, err := application.LoadSigningPrivKey(conf.SignKeyPath, conf.GetPath())
	if err != nil {
		logger.Fatal(err.Error())
	}
	rl := application.NewRootLog(db, sk, pk)

	if publish {
		rec, err := rl.Publish(tree)
		if err != nil {
			logger.Fatal(err.Error())
		}
		logger.Info("Published tree head",
			"seq", rec.Seq, "size", rec.Size, "root", rec.Root)
	}
	if audit {
		if err := rl.Audit(tree); err != nil {
			logger.Fatal(err.Error())
		}
		logger.Info("Root log audit passed")
	}
}
