package main

// ---------------------------------------------------------------------------
// cmd_config.go — write a starter config, show the effective config
// ---------------------------------------------------------------------------

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opscon-project/opscon/internal/core"
	"gopkg.in/yaml.v3"
)

func cmdConfig(args []string) {
	if len(args) < 1 {
		errorf("usage: opscon config <init|show> [flags]")
	}
	sub := args[0]
	args = args[1:]

	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := fs.String("config", "configs/default.yaml", "Config file path")
	backend := fs.String("backend", "", "Backend base URL override")
	force := fs.Bool("force", false, "Overwrite an existing config file")
	fs.Parse(args)

	switch sub {
	case "init":
		if _, err := os.Stat(*configPath); err == nil && !*force {
			errorf("%s already exists (use --force to overwrite)", *configPath)
		}
		if err := os.MkdirAll(filepath.Dir(*configPath), 0755); err != nil {
			errorf("creating config dir: %v", err)
		}
		cfg := core.DefaultConfig()
		if *backend != "" {
			cfg.Backend.BaseURL = *backend
		}
		if err := core.SaveConfig(cfg, *configPath); err != nil {
			errorf("%v", err)
		}
		fmt.Printf("%s wrote %s\n", green("✓"), *configPath)
	case "show":
		cfg := loadConfig(*configPath, *backend)
		data, err := yaml.Marshal(cfg)
		if err != nil {
			errorf("%v", err)
		}
		os.Stdout.Write(data)
	default:
		errorf("unknown config subcommand %q (want init or show)", sub)
	}
}
