package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/naretakis/mita-open-blueprint/internal/config"
	"github.com/naretakis/mita-open-blueprint/internal/validate"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags("mita-validate",
		"Validate extracted MITA process JSON for completeness and artifacts")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	service := validate.NewService(cfg.DataDir, cfg.SourceDir, cfg.MaxFileSize)

	report, err := service.Run(validate.RunRequest{
		DocTypes:   cfg.DocTypes(),
		Area:       cfg.Area,
		CrossCheck: cfg.Strict,
	})
	if err != nil {
		log.Fatalf("Validation failed: %v", err)
	}

	report.RenderText(os.Stdout)
	os.Exit(report.ExitCode())
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("MITA Validate\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
