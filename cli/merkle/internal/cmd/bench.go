package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vpaliy/merklelib/crypto/hasher"
	"github.com/vpaliy/merklelib/merkletree"
)

// benchCmd measures tree construction, append and proof latency for a
// given hasher and tree size.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark tree construction, appends and proofs.",
	Long: `Benchmark tree construction, appends and proofs.

Builds a tree of the given size with the given hasher, then times
incremental appends and audit proof generation and verification.`,
	Run: bench,
}

func init() {
	RootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntP("size", "s", 1000, "Number of leaves in the benchmark tree")
	benchCmd.Flags().IntP("appends", "n", 100, "Number of appends to time")
	benchCmd.Flags().StringP("hasher", "a", hasher.SHA256Hasher, "Tree hasher to benchmark")
}

func bench(cmd *cobra.Command, args []string) {
	size, _ := cmd.Flags().GetInt("size")
	appends, _ := cmd.Flags().GetInt("appends")
	hasherID, _ := cmd.Flags().GetString("hasher")

	th, err := hasher.Hasher(hasherID)
	if err != nil {
		fmt.Println(err)
		return
	}

	data := make([][]byte, size)
	for i := range data {
		data[i] = []byte(fmt.Sprintf("bench-item-%d", i))
	}

	start := time.Now()
	tree := merkletree.New(th, data...)
	buildTime := time.Since(start)

	start = time.Now()
	for i := 0; i < appends; i++ {
		tree.Append([]byte(fmt.Sprintf("bench-append-%d", i)))
	}
	appendTime := time.Since(start)

	root := tree.MerkleRoot()
	start = time.Now()
	verified := 0
	for _, item := range data {
		proof := tree.GetProof(item)
		if merkletree.VerifyInclusion(item, proof, th, root) {
			verified++
		}
	}
	proofTime := time.Since(start)

	fmt.Printf("hasher:   %s\n", th.ID())
	fmt.Printf("build:    %d leaves in %v (%v per leaf)\n",
		size, buildTime, buildTime/time.Duration(size))
	fmt.Printf("append:   %d appends in %v (%v per append)\n",
		appends, appendTime, appendTime/time.Duration(appends))
	fmt.Printf("proofs:   %d/%d verified in %v (%v per proof)\n",
		verified, size, proofTime, proofTime/time.Duration(size))
}
