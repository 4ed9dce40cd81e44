package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/fenilsonani/dedup/internal/cleaner"
	"github.com/fenilsonani/dedup/internal/config"
	"github.com/fenilsonani/dedup/internal/logging"
	"github.com/fenilsonani/dedup/internal/progress"
	"github.com/fenilsonani/dedup/internal/prompt"
	"github.com/fenilsonani/dedup/internal/reporter"
	"github.com/fenilsonani/dedup/internal/retention"
	"github.com/fenilsonani/dedup/internal/scanner"
	"github.com/fenilsonani/dedup/internal/ui/styles"
	"github.com/fenilsonani/dedup/pkg/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath     string
	verbosity      int
	showDuplicates bool
	deleteFlag     bool
	dryRun         bool
	force          bool
	workers        int
	outputFmt      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dedup [flags] <directory>",
	Short: "Find and remove duplicate files",
	Long: `dedup scans a directory tree, fingerprints every regular file by content,
and reports groups of byte-identical files. With --delete it removes all
but one copy per group, keeping the file with the shortest path, after an
interactive confirmation.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.Flags().BoolVar(&showDuplicates, "show-duplicates", false, "show duplicate file paths")
	rootCmd.Flags().BoolVar(&deleteFlag, "delete", false, "delete duplicate files after confirmation")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "with --delete, show what would be deleted without deleting")
	rootCmd.Flags().BoolVar(&force, "force", false, "with --delete, skip confirmation prompts")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "number of hashing workers (0 = number of CPUs)")
	rootCmd.Flags().StringVar(&outputFmt, "output", "", "output format (summary, list, json, yaml)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Setup(os.Stderr, cfg.Verbose)

	format := reporter.OutputFormat(cfg.Output)
	if showDuplicates && !cmd.Flags().Changed("output") {
		format = reporter.FormatList
	}
	if format == "" {
		format = reporter.FormatSummary
	}

	directory := args[0]

	scnr := scanner.New(cfg)
	stopStatus := printStatusLines(scnr.GetProgressReporter())

	result, err := scnr.Scan(directory)
	stopStatus()
	if err != nil {
		return err
	}

	rptr := reporter.New(os.Stdout, format)
	if err := rptr.Report(result); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if !deleteFlag {
		return nil
	}

	return deleteDuplicates(cfg, result, format == reporter.FormatList)
}

// printStatusLines echoes phase transitions to stdout while a scan runs.
// The returned stop function unsubscribes and waits for the printer.
func printStatusLines(pr *progress.Reporter) func() {
	ch := pr.Subscribe()
	done := make(chan struct{})

	go func() {
		defer close(done)
		var lastPhase progress.Phase
		for update := range ch {
			hp, ok := update.(*progress.HashProgress)
			if !ok || hp.Phase == lastPhase {
				continue
			}
			lastPhase = hp.Phase
			switch hp.Phase {
			case progress.PhaseEnumerating:
				fmt.Println("Gathering file paths...")
			case progress.PhaseHashing:
				fmt.Printf("Found %d files. Hashing in parallel...\n", hp.FilesTotal)
			}
		}
	}()

	return func() {
		pr.Unsubscribe(ch)
		<-done
	}
}

// deleteDuplicates drives the confirmation flow and, if confirmed, the
// deletion executor.
func deleteDuplicates(cfg *config.Config, result *scanner.Result, detailsShown bool) error {
	if len(result.Groups) == 0 {
		fmt.Println("Nothing to delete. No duplicate files found.")
		return nil
	}

	if !force {
		// An interrupt while a prompt is pending must abort before any
		// file is removed. Once deletion starts the handler is removed
		// again, so partial deletion stays best-effort and reported.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)
		go func() {
			<-sigCh
			fmt.Println("\nOperation cancelled.")
			os.Exit(0)
		}()

		flow := prompt.NewFlow(os.Stdin, os.Stdout)
		decision := flow.Confirm(detailsShown, func() {
			reporter.ListGroups(os.Stdout, result.Groups)
		})

		signal.Stop(sigCh)

		switch decision {
		case prompt.DecisionAborted:
			fmt.Println("Operation cancelled.")
			return nil
		case prompt.DecisionDeclined:
			fmt.Println("Aborted deletion.")
			return nil
		}
	}

	plans := retention.ApplyAll(result.Groups)
	candidates := retention.Candidates(plans)

	clnr := cleaner.New(result.Root, cfg.DryRun)
	deleteResult := clnr.Delete(candidates)

	for _, outcome := range deleteResult.Outcomes {
		switch {
		case deleteResult.DryRun:
			fmt.Printf("[DRY RUN] Would delete: %s\n", outcome.Path)
		case outcome.Err != nil:
			fmt.Println(styles.ErrorStyle.Render(
				fmt.Sprintf("Error deleting %s: %v", outcome.Path, outcome.Err.Original)))
		default:
			fmt.Printf("Deleted: %s\n", outcome.Path)
		}
	}

	if deleteResult.DryRun {
		fmt.Printf("\n[DRY RUN] Would delete %d files (%s). No files were removed.\n",
			len(deleteResult.Outcomes), utils.FormatBytes(totalSize(deleteResult)))
		return nil
	}

	fmt.Printf("\nDeleted %d files (%s reclaimed)\n",
		deleteResult.Deleted, utils.FormatBytes(deleteResult.DeletedSize))

	if deleteResult.Failed > 0 {
		fmt.Print(cleaner.FormatErrorSummary(deleteResult.Errors()))
	}

	return nil
}

func totalSize(result *cleaner.Result) int64 {
	var total int64
	for _, o := range result.Outcomes {
		total += o.Size
	}
	return total
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	// Flags override file configuration.
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = outputFmt
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbosity
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
