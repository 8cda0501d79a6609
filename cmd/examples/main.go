// Command examples preloads the configured dataset registry the same way the
// server does at startup and reports what was found. It is meant for checking
// a dataset directory before deploying, not as part of the server.
//
// Flags:
//
//	--datasets  comma-separated dataset names (default: configured registry)
//	--root      dataset root directory (default: configured root)
//	--sample    number of example sentences to print per dataset
//	--list      print every dataset name the catalog knows and exit
//
// Exit codes: 0 = success, 1 = error or incomplete datasets.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/absa-demo/internal/app"
	"github.com/heartmarshall/absa-demo/internal/app/preload"
	"github.com/heartmarshall/absa-demo/internal/config"
	"github.com/heartmarshall/absa-demo/internal/dataset"
)

func main() {
	datasetsFlag := flag.String("datasets", "", "comma-separated dataset names (default: configured registry)")
	rootFlag := flag.String("root", "", "dataset root directory (default: configured root)")
	sampleFlag := flag.Int("sample", 3, "example sentences to print per dataset")
	listFlag := flag.Bool("list", false, "list dataset names known to the catalog and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	// CLI flags override config.
	root := cfg.Datasets.Root
	if *rootFlag != "" {
		root = *rootFlag
	}
	names := cfg.Datasets.Names
	if *datasetsFlag != "" {
		names = config.ParseNames(*datasetsFlag)
	}

	catalog := dataset.NewCatalog(root)

	if *listFlag {
		fmt.Println(strings.Join(catalog.Names(), "\n"))
		return
	}

	pipeline := preload.NewPipeline(logger, catalog, dataset.NewLoader(logger, catalog), names)
	pool := pipeline.Run()

	results := pipeline.Results()
	for _, name := range names {
		r := results[name]
		if r.Skipped {
			fmt.Printf("%-14s skipped: %v\n", name, r.Err)
			continue
		}
		fmt.Printf("%-14s files=%d missing=%d failed=%d lines=%d kept=%d duplicates=%d (%s)\n",
			name, r.Stats.Files, r.Stats.MissingFiles, r.Stats.FailedFiles,
			r.Stats.TotalLines, r.Stats.Kept, r.Stats.Duplicates, r.Duration.Round(time.Millisecond))

		examples := pool.Examples(name)
		for i := 0; i < *sampleFlag && i < len(examples); i++ {
			fmt.Printf("    %s\n", examples[i])
		}
	}

	if pipeline.HasErrors() {
		logger.Warn("preload completed with errors", slog.String("root", root))
		os.Exit(1)
	}

	logger.Info("preload completed successfully", slog.Int("datasets", len(pool.Names())))
}
