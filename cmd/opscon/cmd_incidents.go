package main

// ---------------------------------------------------------------------------
// cmd_incidents.go — list incidents
// ---------------------------------------------------------------------------

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/opscon-project/opscon/internal/core"
	"github.com/rs/zerolog"
)

func cmdIncidents(args []string) {
	fs := flag.NewFlagSet("incidents", flag.ExitOnError)
	configPath := fs.String("config", "configs/default.yaml", "Config file path")
	backend := fs.String("backend", "", "Backend base URL override")
	status := fs.String("status", "", "Filter by status: active, responding, resolved")
	severity := fs.String("severity", "", "Filter by severity")
	search := fs.String("search", "", "Free-text filter over id/title/location")
	format := fs.String("format", "table", "Output format: table, json")
	fs.Parse(args)

	cfg := loadConfig(*configPath, *backend)
	client := core.NewClient(cfg, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	incidents, err := client.FetchIncidents(ctx)
	if err != nil {
		errorf("%v", err)
	}

	query := core.IncidentQuery{
		Status: core.IncidentStatus(*status),
		Search: *search,
	}
	if *severity != "" {
		sev, ok := core.ParseSeverity(*severity)
		if !ok {
			errorf("unknown severity %q", *severity)
		}
		query.Severity = &sev
	}
	filtered := core.FilterIncidents(core.NewSnapshot(incidents), query)

	if parseFormat(*format) == FormatJSON {
		data, _ := json.MarshalIndent(filtered, "", "  ")
		fmt.Println(string(data))
		return
	}

	tbl := NewTable(os.Stdout, "ID", "SEV", "STATUS", "TITLE", "LOCATION")
	for _, inc := range filtered {
		tbl.AddRow(inc.ID, inc.Severity.String(), string(inc.Status), inc.Title, inc.Location)
	}
	tbl.Render()
	fmt.Printf("%d incidents\n", len(filtered))
}
