package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/h2hpxml/internal/conformance"
	"github.com/roach88/h2hpxml/internal/store"
	"github.com/roach88/h2hpxml/internal/translate"
)

// BatchSummary is the JSON payload of a batch run.
type BatchSummary struct {
	Total    int      `json:"total"`
	OK       int      `json:"ok"`
	Failed   int      `json:"failed"`
	Warnings int      `json:"warnings"`
	Errors   []string `json:"errors,omitempty"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		workers     int
		dbPath      string
		outDir      string
		validateOut bool
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Translate every .h2k file under a directory",
		Long: `Translate every HOT2000 file under a directory in parallel.

Each document gets its own translation run, so worker count only
affects throughput, never output. A failing document is recorded and
skipped; the batch continues. With --db, per-document outcomes are
logged to a SQLite results database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(rootOpts, args[0], workers, dbPath, outDir, validateOut, cmd)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 4, "number of parallel workers")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite results database (optional)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for emitted documents (default: alongside inputs)")
	cmd.Flags().BoolVar(&validateOut, "validate", false, "validate each emitted document")

	return cmd
}

func runBatch(opts *RootOptions, dir string, workers int, dbPath, outDir string, validateOut bool, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		_ = formatter.Error("E100", err.Error(), nil)
		return err
	}
	if workers < 1 {
		workers = 1
	}

	inputs, err := findInputs(dir)
	if err != nil {
		_ = formatter.Error("E100", err.Error(), nil)
		return WrapExitError(ExitCommandError, "scan inputs", err)
	}
	if len(inputs) == 0 {
		msg := fmt.Sprintf("no .h2k files under %s", dir)
		_ = formatter.Error("E100", msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			_ = formatter.Error("E100", err.Error(), nil)
			return WrapExitError(ExitCommandError, "create output directory", err)
		}
	}

	var db *store.Store
	if dbPath != "" {
		db, err = store.Open(dbPath)
		if err != nil {
			_ = formatter.Error("E100", err.Error(), nil)
			return WrapExitError(ExitCommandError, "open results database", err)
		}
		defer db.Close()
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.Verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	logger.Info("batch starting", "documents", len(inputs), "workers", workers)

	records := runWorkers(inputs, workers, cfg, outDir, validateOut, logger)

	ctx := context.Background()
	summary := BatchSummary{Total: len(records)}
	for _, rec := range records {
		if rec.OK {
			summary.OK++
		} else {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %s", rec.InputPath, rec.Error))
		}
		summary.Warnings += rec.WarningCount
		if db != nil {
			if err := db.WriteRun(ctx, rec); err != nil {
				_ = formatter.Error("E100", err.Error(), nil)
				return WrapExitError(ExitCommandError, "record result", err)
			}
		}
	}

	if formatter.Format == "json" {
		if summary.Failed > 0 {
			_ = formatter.Success(summary)
			return NewExitError(ExitFailure, fmt.Sprintf("%d of %d documents failed", summary.Failed, summary.Total))
		}
		return formatter.Success(summary)
	}

	fmt.Fprintf(formatter.Writer, "%d documents: %d ok, %d failed, %d warnings\n",
		summary.Total, summary.OK, summary.Failed, summary.Warnings)
	for _, e := range summary.Errors {
		fmt.Fprintf(formatter.Writer, "  ✗ %s\n", e)
	}
	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d documents failed", summary.Failed, summary.Total))
	}
	return nil
}

// runWorkers fans the inputs out over a fixed worker pool. Every worker
// translates with its own run, so nothing is shared but the immutable
// config and the jobs channel. Results come back in input order.
func runWorkers(inputs []string, workers int, cfg translate.Config, outDir string, validateOut bool, logger *slog.Logger) []store.RunRecord {
	jobs := make(chan int)
	records := make([]store.RunRecord, len(inputs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				logger.Debug("translating", "input", inputs[i])
				records[i] = processOne(inputs[i], cfg, outDir, validateOut)
				if rec := records[i]; rec.OK {
					logger.Info("translated", "input", rec.InputPath, "output", rec.OutputPath, "warnings", rec.WarningCount)
				} else {
					logger.Warn("failed", "input", rec.InputPath, "error", rec.Error)
				}
			}
		}()
	}
	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return records
}

// processOne translates a single document and reports its outcome as a
// store record. Failures are captured, never propagated: the batch
// continues past a bad document.
func processOne(input string, cfg translate.Config, outDir string, validateOut bool) store.RunRecord {
	rec := store.RunRecord{InputPath: input, StartedAt: time.Now().UTC()}
	defer func() { rec.FinishedAt = time.Now().UTC() }()

	out, err := translateFile(input, cfg)
	if out != nil {
		rec.RunToken = out.RunToken
		rec.WarningCount = len(out.Warnings)
	}
	if err != nil {
		rec.Error = err.Error()
		return rec
	}

	if validateOut {
		if res := conformance.Validate(out.Document); !res.Valid {
			rec.Error = fmt.Sprintf("validation failed with %d error(s): %s", len(res.Errors), res.Errors[0])
			return rec
		}
	}

	output := defaultOutputPath(input)
	if outDir != "" {
		output = filepath.Join(outDir, filepath.Base(output))
	}
	if err := os.WriteFile(output, out.Document, 0o644); err != nil {
		rec.Error = fmt.Sprintf("write output: %v", err)
		return rec
	}

	rec.OutputPath = output
	rec.OK = true
	return rec
}

// findInputs collects every .h2k file under dir, sorted for stable
// batch ordering.
func findInputs(dir string) ([]string, error) {
	var inputs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".h2k") {
			inputs = append(inputs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(inputs)
	return inputs, nil
}
