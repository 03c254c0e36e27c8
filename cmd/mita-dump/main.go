package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/naretakis/mita-open-blueprint/internal/dump"
)

var (
	sourceDir   = flag.String("source", "source-pdfs/may-2014-update", "Directory containing source PDFs")
	outDir      = flag.String("out", ".", "Directory for dump files")
	docType     = flag.String("doctype", "bpt", "Document type to dump: bpt or bcm")
	maxFileSize = flag.Int64("maxfilesize", 100*1024*1024, "Maximum PDF file size in bytes")
	help        = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if *docType != "bpt" && *docType != "bcm" {
		fmt.Fprintf(os.Stderr, "Error: doctype must be 'bpt' or 'bcm'\n\n")
		printUsage()
		os.Exit(1)
	}

	service := dump.NewService(*sourceDir, *outDir, *maxFileSize)

	areas := flag.Args()
	if len(areas) == 0 {
		areas = service.Areas()
	}

	failures := 0
	for _, area := range areas {
		outPath, err := service.DumpArea(area, *docType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error dumping %s: %v\n", area, err)
			failures++
			continue
		}
		fmt.Printf("%s -> %s\n", area, outPath)
	}

	if failures == len(areas) {
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("mita-dump - Write positioned text dumps of MITA source PDFs")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("The dump shows every text span with its page coordinates followed by")
	fmt.Println("the reconstructed line text. Use it to inspect table column positions")
	fmt.Println("and page furniture in the source documents.")
}

func printUsage() {
	fmt.Println("Usage: mita-dump [options] [area ...]")
	fmt.Println()
	fmt.Println("With no area arguments every known business area is dumped.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}
