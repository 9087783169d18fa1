package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"intake-router/intake"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var configPath string
	var ledgerPath string
	var dbPath string
	var errorDir string
	var debug bool
	var writeSamples string

	flag.StringVar(&configPath, "config", "", "YAML config file path.")
	flag.StringVar(&ledgerPath, "ledger", "memory_log.json", "Persisted JSON ledger path.")
	flag.StringVar(&dbPath, "db", "", "SQLite archive path. Empty disables archiving.")
	flag.StringVar(&errorDir, "error-dir", "", "Directory receiving unreadable/undecodable input files.")
	flag.BoolVar(&debug, "debug", false, "Enable debug logs.")
	flag.StringVar(&writeSamples, "write-samples", "", "Write sample documents into this directory and process them.")
	flag.Parse()

	visited := map[string]bool{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
	})

	// Base config from file (optional), CLI flags override.
	fileCfg := &intake.FileConfig{}
	if configPath != "" {
		cfg, err := intake.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		fileCfg = cfg
	}

	finalLedger := fileCfg.Ledger
	if finalLedger == "" || visited["ledger"] {
		finalLedger = ledgerPath
	}
	finalDB := fileCfg.DB
	if visited["db"] {
		finalDB = dbPath
	}
	finalErrorDir := fileCfg.ErrorDir
	if visited["error-dir"] {
		finalErrorDir = errorDir
	}
	finalDebug := fileCfg.Debug
	if visited["debug"] {
		finalDebug = debug
	}

	documents := fileCfg.Documents.Items
	if writeSamples != "" {
		descs, err := intake.WriteSampleDocuments(writeSamples)
		if err != nil {
			log.Fatalf("write samples: %v", err)
		}
		documents = append(documents, descs...)
	}
	if len(documents) == 0 {
		fmt.Fprintln(os.Stderr, "no documents to process (use config.yaml documents or --write-samples)")
		os.Exit(2)
	}

	runner, err := intake.NewRunner(intake.RunnerConfig{
		LedgerPath: finalLedger,
		DBPath:     finalDB,
		ErrorDir:   finalErrorDir,
		Debug:      finalDebug,
		Documents:  documents,
	})
	if err != nil {
		log.Fatalf("init runner: %v", err)
	}
	defer runner.Close()

	if err := runner.RunOnce(); err != nil {
		log.Fatalf("run: %v", err)
	}

	led := runner.Ledger()
	for _, id := range led.ThreadIDs() {
		rec, _ := led.Get(id)
		log.Printf("%s: %s (%d fields, %d anomalies)", id, rec.Intent, len(rec.Extracted), len(rec.Anomalies))
	}
}
