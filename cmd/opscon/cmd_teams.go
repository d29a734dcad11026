package main

// ---------------------------------------------------------------------------
// cmd_teams.go — list response teams
// ---------------------------------------------------------------------------

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/opscon-project/opscon/internal/core"
	"github.com/rs/zerolog"
)

func cmdTeams(args []string) {
	fs := flag.NewFlagSet("teams", flag.ExitOnError)
	configPath := fs.String("config", "configs/default.yaml", "Config file path")
	backend := fs.String("backend", "", "Backend base URL override")
	status := fs.String("status", "", "Filter by status: available, deployed, unavailable")
	search := fs.String("search", "", "Free-text filter over id/name/base")
	format := fs.String("format", "table", "Output format: table, json")
	fs.Parse(args)

	cfg := loadConfig(*configPath, *backend)
	client := core.NewClient(cfg, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	teams, err := client.FetchTeams(ctx)
	if err != nil {
		errorf("%v", err)
	}

	filtered := core.FilterTeams(core.NewSnapshot(teams), core.TeamQuery{
		Status: core.TeamStatus(*status),
		Search: *search,
	})

	if parseFormat(*format) == FormatJSON {
		data, _ := json.MarshalIndent(filtered, "", "  ")
		fmt.Println(string(data))
		return
	}

	tbl := NewTable(os.Stdout, "ID", "NAME", "TYPE", "STATUS", "MEMBERS", "CAPABILITIES")
	for _, tm := range filtered {
		tbl.AddRow(tm.ID, tm.Name, tm.Type, string(tm.Status),
			fmt.Sprintf("%d", tm.Members), strings.Join(tm.Capabilities, ", "))
	}
	tbl.Render()
	fmt.Printf("%d teams\n", len(filtered))
}
