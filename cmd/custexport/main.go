package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"custexport/internal/config"
	"custexport/internal/dataprocessing"
	"custexport/internal/exporter"
	"custexport/internal/files"
	"custexport/internal/infrastructure"
	"custexport/pkg/contracts"
	"custexport/pkg/contracts/domain"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		infrastructure.WithError(infrastructure.GetLogger(), err).Error("Export failed")
		os.Exit(1)
	}
}

// options holds the parsed command line
type options struct {
	configPath     string
	out            string
	outputDir      string
	batchSize      int
	dedup          bool
	dedupPerBatch  bool
	debugBatchSize int
	truncate       bool
	version        bool
	inputs         []string
	set            map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("custexport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: custexport [flags] <input.csv|input.xlsx|dir>...\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file (defaults to ./custexport.yaml if present)")
	fs.StringVar(&opts.out, "out", "customers.csv", "target file name, relative to the output directory")
	fs.StringVar(&opts.outputDir, "output-dir", "", "output directory (overrides paths.output_dir)")
	fs.IntVar(&opts.batchSize, "batch-size", 0, "maximum customers per file (overrides export.batch_size)")
	fs.BoolVar(&opts.dedup, "dedup", true, "drop customers whose name was already exported (overrides export.deduplicate)")
	fs.BoolVar(&opts.dedupPerBatch, "dedup-per-batch", false, "only drop duplicates within the same batch (overrides export.dedup_per_batch)")
	fs.IntVar(&opts.debugBatchSize, "debug-batch-size", 0, "also write an undeduplicated debug export with this batch size (overrides export.debug_batch_size)")
	fs.BoolVar(&opts.truncate, "truncate", false, "truncate existing output files instead of appending (overrides export.truncate)")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	opts.inputs = fs.Args()

	return opts, nil
}

// applyOverrides copies explicitly set flags over the loaded configuration
func (o *options) applyOverrides(cfg *config.Config) {
	if o.set["output-dir"] {
		cfg.Paths.OutputDir = o.outputDir
	}
	if o.set["batch-size"] {
		cfg.Export.BatchSize = o.batchSize
	}
	if o.set["dedup"] {
		cfg.Export.Deduplicate = o.dedup
	}
	if o.set["dedup-per-batch"] {
		cfg.Export.DedupPerBatch = o.dedupPerBatch
	}
	if o.set["debug-batch-size"] {
		cfg.Export.DebugBatchSize = o.debugBatchSize
	}
	if o.set["truncate"] {
		cfg.Export.Truncate = o.truncate
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) (err error) {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	if !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = paths.GetLogPath(cfg.Logging.FilePath)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureTraceID(ctx)

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if shutdownErr := providers.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			infrastructure.WithError(logger, shutdownErr).WarnContext(ctx, "Telemetry shutdown failed")
		}
	}()

	metrics, err := infrastructure.CreateExportMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create export metrics: %w", err)
	}

	inputs, err := files.ResolveInputs(opts.inputs)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("no input files given")
	}

	logger.InfoContext(ctx, "Starting customer export",
		slog.Int("input_count", len(inputs)),
		slog.String("target", opts.out),
		slog.String("output_dir", paths.OutputDir),
		slog.Int("batch_size", cfg.Export.BatchSize),
		slog.Bool("deduplicate", cfg.Export.Deduplicate),
		slog.Bool("dedup_per_batch", cfg.Export.DedupPerBatch))

	customers, err := dataprocessing.LoadAll(ctx, inputs)
	if err != nil {
		return err
	}

	sink := files.NewLineFileWriter(paths.OutputDir, files.LineFileOptions{Truncate: cfg.Export.Truncate})
	defer func() {
		if closeErr := sink.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output files: %w", closeErr)
		}
	}()

	instrument := &exporter.Instrumentation{
		Tracer:  providers.Tracer,
		Metrics: metrics,
		Logger:  logger,
	}

	if err := export(ctx, sink, opts.out, customers, exporter.PipelineOptions{
		BatchSize:     cfg.Export.BatchSize,
		Deduplicate:   cfg.Export.Deduplicate,
		DedupPerBatch: cfg.Export.DedupPerBatch,
		Instrument:    instrument,
	}); err != nil {
		return err
	}

	if cfg.Export.DebugBatchSize > 0 {
		debugTarget := debugFileName(cfg.Export.DebugPrefix, opts.out)
		if err := export(ctx, sink, debugTarget, customers, exporter.PipelineOptions{
			BatchSize:  cfg.Export.DebugBatchSize,
			Instrument: instrument,
		}); err != nil {
			return fmt.Errorf("debug export failed: %w", err)
		}
	}

	if err := sink.Flush(); err != nil {
		return fmt.Errorf("failed to flush output files: %w", err)
	}

	summaries := sink.Files()
	total := 0
	for _, summary := range summaries {
		total += summary.Lines
		fmt.Fprintf(stdout, "%s\t%d\n", paths.GetOutputPath(summary.Name), summary.Lines)
	}

	logger.InfoContext(ctx, "Customer export complete",
		slog.Int("customers_read", len(customers)),
		slog.Int("lines_written", total),
		slog.Int("file_count", len(summaries)))

	if cfg.Telemetry.MetricsFile != "" {
		if err := providers.WriteMetricsFile(cfg.Telemetry.MetricsFile); err != nil {
			infrastructure.WithError(logger, err).WarnContext(ctx, "Failed to write metrics file",
				slog.String("path", cfg.Telemetry.MetricsFile))
		}
	}

	return nil
}

// export builds a pipeline over sink and writes customers to target
func export(ctx context.Context, sink exporter.LineWriter, target string, customers []domain.Customer, opts exporter.PipelineOptions) error {
	writer, err := exporter.NewPipeline(sink, opts)
	if err != nil {
		return fmt.Errorf("failed to build export pipeline: %w", err)
	}

	if err := writer.WriteCustomers(ctx, target, customers); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}

// debugFileName prefixes the base name of target, keeping its directory
func debugFileName(prefix, target string) string {
	dir, base := filepath.Split(target)
	return dir + prefix + base
}
