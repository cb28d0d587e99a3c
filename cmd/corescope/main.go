// Command corescope parses an ELF64 core dump and prints its decoded
// object model. It is a thin external collaborator over the corescope
// library: one positional argument, one exit code on failure.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/coredump/corescope"
)

// Config holds the configuration for corescope.
type Config struct {
	CorePath string
	Verbose  bool
}

// parseFlags parses command line flags.
func parseFlags() (*Config, error) {
	config := &Config{}

	flag.BoolVar(&config.Verbose, "verbose", false, "print per-section progress to stderr")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		return nil, fmt.Errorf("usage: corescope [flags] <core-file>")
	}
	config.CorePath = args[0]

	return config, nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	config, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(config *Config) error {
	if config.Verbose {
		log.Printf("corescope: reading %s", config.CorePath)
	}

	data, err := os.ReadFile(config.CorePath)
	if err != nil {
		return fmt.Errorf("failed to read core file: %w", err)
	}

	if config.Verbose {
		log.Printf("corescope: parsing %d bytes", len(data))
	}

	core, err := corescope.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse core file: %w", err)
	}

	printCore(core)
	return nil
}

func printCore(core *corescope.Core) {
	fmt.Printf("process: %s\n", core.Process)

	fmt.Printf("segments (%d):\n", len(core.Segments))
	for _, seg := range core.Segments {
		fmt.Printf("  %s\n", seg)
	}

	fmt.Printf("threads (%d):\n", len(core.Threads))
	for _, t := range core.Threads {
		fmt.Printf("  %s\n", t)
	}

	fmt.Printf("file map (%d):\n", len(core.FileMap))
	for _, m := range core.FileMap {
		fmt.Printf("  %s\n", m)
	}
}
