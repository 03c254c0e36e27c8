package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/naretakis/mita-open-blueprint/internal/config"
	"github.com/naretakis/mita-open-blueprint/internal/extract"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging verbosity from the configuration
func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags("mita-extract",
		"Extract structured process data from MITA 3.0 BPT and BCM PDFs")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	service := extract.NewService(cfg.SourceDir, cfg.DataDir, cfg.MaxFileSize)

	var results []*extract.ExtractAreaResult
	if cfg.Area != "" {
		for _, docType := range cfg.DocTypes() {
			res, err := service.ExtractArea(extract.ExtractAreaRequest{
				Area:     cfg.Area,
				DocType:  docType,
				Diagrams: cfg.Diagrams,
				Strict:   cfg.Strict,
			})
			if err != nil {
				res = &extract.ExtractAreaResult{
					Area:    cfg.Area,
					DocType: docType,
					Message: err.Error(),
				}
			}
			results = append(results, res)
		}
	} else {
		results = service.ExtractAll(cfg.DocTypes(), cfg.Diagrams, cfg.Strict)
	}

	processes, files, diagrams, failures := 0, 0, 0, 0
	for _, res := range results {
		if res.Message != "" {
			failures++
			log.Printf("%s/%s: %s", res.DocType, res.Area, res.Message)
			continue
		}
		processes += res.Processes
		files += len(res.Files)
		diagrams += res.Diagrams
		log.Printf("%s/%s: %d processes from %s", res.DocType, res.Area, res.Processes, res.SourceFile)
	}

	log.Printf("Done: %d processes, %d files written, %d diagrams, %d areas skipped",
		processes, files, diagrams, failures)

	if files == 0 {
		os.Exit(1)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("MITA Extract\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
