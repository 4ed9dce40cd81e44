package main

import (
	"fmt"
	"os"

	"github.com/fenilsonani/dedup/internal/gen"
	"github.com/spf13/cobra"
)

var opts = gen.DefaultOptions()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dedupgen [flags] <root>",
	Short: "Generate a synthetic directory tree with duplicate files",
	Long: `dedupgen populates a directory with randomly named files and a
controlled percentage of byte-identical contents, for testing and
benchmarking the dedup scanner.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]

		summary, err := gen.Generate(root, opts)
		if err != nil {
			return err
		}

		fmt.Printf("Generated %d files under %s (depth %d): %d duplicates in %d clusters\n",
			summary.TotalFiles, root, opts.Depth, summary.DuplicateFiles, summary.Clusters)
		return nil
	},
}

func init() {
	rootCmd.Flags().IntVar(&opts.Dirs, "dirs", opts.Dirs, "subdirectories per directory")
	rootCmd.Flags().IntVar(&opts.FilesPerDir, "files", opts.FilesPerDir, "files per directory")
	rootCmd.Flags().IntVar(&opts.Depth, "depth", opts.Depth, "directory nesting depth")
	rootCmd.Flags().IntVar(&opts.TextLength, "size", opts.TextLength, "bytes of content per file")
	rootCmd.Flags().IntVar(&opts.DuplicatePct, "duplicate-pct", opts.DuplicatePct, "percentage of files with duplicated content")
	rootCmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 = random)")
}
