package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
	"github.com/custodia-labs/docvault-cli/internal/core/services"
)

var (
	indexReindex bool
	indexWatch   bool
)

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Index a directory of documents",
	Long: `Indexes every .txt and .md file in the documents directory: each
file becomes a collection in the database, split into overlapping
chunks with one embedding per chunk.

If the database already holds indexed content the pass is skipped;
use --reindex to rebuild from the source files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexReindex, "reindex", false, "rebuild even if the index is already populated")
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "keep watching the directory and re-index on changes")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if err := ensureIngest(); err != nil {
		return err
	}

	cfg, err := settings()
	if err != nil {
		return err
	}

	dir := cfg.Storage.DocumentsDir
	if len(args) == 1 {
		dir = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	populated, err := ingestService.HasContent(ctx)
	if err != nil {
		return err
	}

	if populated && !indexReindex {
		cmd.Println("Index already populated (use --reindex to rebuild).")
	} else {
		report, err := ingestService.Ingest(ctx, dir)
		if err != nil {
			return fmt.Errorf("index %s: %w", dir, err)
		}
		printReport(cmd, report)
	}

	if !indexWatch {
		return nil
	}

	cmd.Printf("Watching %s (ctrl-c to stop)...\n", dir)
	watchCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = services.NewWatcher(ingestService, 0).Watch(watchCtx, dir)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printReport(cmd *cobra.Command, report domain.IngestReport) {
	cmd.Printf("Indexed %d collection(s).\n", len(report.Indexed))
	for _, name := range report.Indexed {
		cmd.Printf("  %s\n", name)
	}

	if report.OK() {
		return
	}

	cmd.Printf("%d document(s) failed:\n", len(report.Failures))
	for _, failure := range report.Failures {
		cmd.Printf("  %s: %v\n", failure.Document, failure.Err)
	}
}
