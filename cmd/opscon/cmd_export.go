package main

// ---------------------------------------------------------------------------
// cmd_export.go — download an export stream from the backend
// ---------------------------------------------------------------------------

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/opscon-project/opscon/internal/core"
	"github.com/rs/zerolog"
)

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "configs/default.yaml", "Config file path")
	backend := fs.String("backend", "", "Backend base URL override")
	output := fs.String("output", "", "Write to file instead of stdout")
	fs.Parse(args)

	if fs.NArg() < 1 {
		errorf("usage: opscon export <type> [--output FILE]   (types: incidents, evidence)")
	}
	exportType := fs.Arg(0)

	cfg := loadConfig(*configPath, *backend)
	client := core.NewClient(cfg, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	data, err := client.Export(ctx, exportType)
	if err != nil {
		errorf("%v", err)
	}

	if *output == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		errorf("writing %s: %v", *output, err)
	}
	fmt.Printf("%s exported %d bytes to %s\n", green("✓"), len(data), *output)
}
