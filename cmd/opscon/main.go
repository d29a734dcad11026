package main

// ---------------------------------------------------------------------------
// main.go — command dispatcher for the opscon CLI
//
// This file is intentionally slim. All command implementations live in
// their own files (cmd_*.go). Shared helpers are in helpers.go and
// output.go.
// ---------------------------------------------------------------------------

import (
	"fmt"
	"os"
)

var (
	version   = "0.3.0"
	commit    = "dev"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "--version", "-V":
			printVersion(os.Stdout)
			os.Exit(0)
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			os.Exit(0)
		}
	}

	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(0)
	}

	subcmd := os.Args[1]
	args := os.Args[2:]

	switch subcmd {
	case "console":
		cmdConsole(args)
	case "alerts":
		cmdAlerts(args)
	case "incidents":
		cmdIncidents(args)
	case "teams":
		cmdTeams(args)
	case "stats":
		cmdStats(args)
	case "export":
		cmdExport(args)
	case "config":
		cmdConfig(args)
	case "version":
		printVersion(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, red("error: ")+"unknown command %q\n\n", subcmd)
		printUsage(os.Stderr)
		os.Exit(1)
	}
}

func printVersion(w *os.File) {
	fmt.Fprintf(w, "opscon %s (commit %s, built %s)\n", version, commit, buildDate)
}

func printUsage(w *os.File) {
	fmt.Fprintf(w, `%s — operator console for the public-safety monitoring backend

Usage:
  opscon <command> [flags]

Commands:
  console     Live operator console (polls alerts, incidents, teams, stats)
  alerts      List alerts, or acknowledge one: opscon alerts ack <id>
  incidents   List incidents
  teams       List response teams
  stats       Show dashboard statistics and trends
  export      Download an export stream (incidents, evidence, ...)
  config      Manage configuration: init, show
  version     Print version

Flags common to most commands:
  --config    Config file path (default configs/default.yaml)
  --backend   Backend base URL override (or OPSCON_BACKEND_URL)

Run 'opscon <command> -h' for command flags.
`, bold("opscon"))
}
