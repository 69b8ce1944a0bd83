// Command ingest loads universities, courses or subjects from a file into the catalog.
//
//	ingest -kind courses -file courses.xlsx
//	ingest -kind universities -file dump.js -format firestore -dry-run
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/yigit/unimatch/internal/bootstrap"
	"github.com/yigit/unimatch/internal/ingest"
	"github.com/yigit/unimatch/internal/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML config file")
		kindFlag   = flag.String("kind", "", "record kind: universities, courses or subjects")
		file       = flag.String("file", "", "source file")
		formatFlag = flag.String("format", "", "json, xlsx, html or firestore (default: from the file extension)")
		dryRun     = flag.Bool("dry-run", false, "parse and print the records without touching the database")
	)
	flag.Parse()

	if *kindFlag == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *kindFlag, *file, *formatFlag, *dryRun, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("Ingestion failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, kindFlag, file, formatFlag string, dryRun bool, out io.Writer) error {
	kind, err := ingest.ParseKind(kindFlag)
	if err != nil {
		return err
	}
	format := ingest.DetectFormat(file)
	if formatFlag != "" {
		if format, err = ingest.ParseFormat(formatFlag); err != nil {
			return err
		}
	}

	batch, err := readBatch(kind, format, file, logger.Get())
	if err != nil {
		return err
	}
	logger.Info().
		Str("file", file).
		Str("kind", string(kind)).
		Str("format", string(format)).
		Int("records", batch.Len()).
		Int("rejected", len(batch.Rejected)).
		Msg("Source parsed")

	if dryRun {
		return printJSON(out, batch)
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}
	dbPool, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	catalogCache, err := bootstrap.SetupCache(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	if catalogCache != nil {
		defer catalogCache.Close()
	}

	deps := bootstrap.BuildDependencies(cfg, dbPool, catalogCache, lgr)
	resp, err := deps.IngestionService.Ingest(ctx, batch)
	if err != nil {
		return err
	}
	if err := printJSON(out, resp); err != nil {
		return err
	}
	if resp.Summary.Failed > 0 {
		return fmt.Errorf("%d of %d records failed", resp.Summary.Failed, len(resp.Data))
	}
	return nil
}

func readBatch(kind ingest.Kind, format ingest.Format, file string, lgr zerolog.Logger) (*ingest.Batch, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	if format != ingest.FormatFirestore {
		return ingest.Parse(kind, format, f)
	}

	batch, stats, err := ingest.ReadFirestoreDump(kind, f)
	if err != nil {
		return nil, err
	}
	lgr.Info().
		Int("blocks", stats.Blocks).
		Int("courses", stats.Courses).
		Int("targetChanges", stats.TargetChanges).
		Int("missingFields", stats.MissingFields).
		Int("nonCourseDocs", stats.NonCourseDocs).
		Int("unknownObjects", stats.UnknownObjects).
		Msg("Firestore dump read")
	return batch, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
