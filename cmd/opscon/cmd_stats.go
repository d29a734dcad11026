package main

// ---------------------------------------------------------------------------
// cmd_stats.go — dashboard statistics and analytics trends
// ---------------------------------------------------------------------------

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/opscon-project/opscon/internal/core"
	"github.com/rs/zerolog"
)

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	configPath := fs.String("config", "configs/default.yaml", "Config file path")
	backend := fs.String("backend", "", "Backend base URL override")
	trends := fs.Bool("trends", false, "Also fetch the analytics trend series")
	period := fs.String("period", "week", "Trend period: day, week, month, year")
	metric := fs.String("metric", "incidents", "Trend metric")
	jsonOut := fs.Bool("json", false, "Output raw JSON")
	fs.Parse(args)

	cfg := loadConfig(*configPath, *backend)
	client := core.NewClient(cfg, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	stats, err := client.FetchStats(ctx)
	if err != nil {
		errorf("%v", err)
	}

	if *jsonOut {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Printf("%s\n", bold("INCIDENTS"))
		fmt.Printf("  %-18s %d\n", "Total:", stats.Incidents.Total)
		fmt.Printf("  %-18s %d\n", "Active:", stats.Incidents.Active)
		fmt.Printf("  %-18s %d\n", "High risk:", stats.Incidents.HighRisk)
		fmt.Printf("  %-18s %d\n", "Pending review:", stats.Incidents.PendingReviews)
		fmt.Printf("%s\n", bold("SYSTEM"))
		fmt.Printf("  %-18s %d\n", "Cameras online:", stats.System.CamerasOnline)
		fmt.Printf("  %-18s %d\n", "Alerts today:", stats.System.RiskAlertsToday)
		fmt.Printf("  %-18s %s\n", "Health:", strings.ToUpper(stats.System.SystemHealth))
	}

	if !*trends {
		return
	}

	series, err := client.FetchTrends(ctx, *period, *metric)
	if err != nil {
		warnf("trends unavailable: %v", err)
		return
	}
	if *jsonOut {
		data, _ := json.MarshalIndent(series, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("%s  %s\n", bold("TRENDS"),
		dim(fmt.Sprintf("%s/%s, %s %.1f%%", series.Period, series.Metric, series.Trend, series.ChangePercentage)))
	max := 1
	for _, p := range series.DataPoints {
		if p.Value > max {
			max = p.Value
		}
	}
	for _, p := range series.DataPoints {
		// Proportional bar width, capped at 40 columns
		width := p.Value * 40 / max
		fmt.Printf("  %-22s %s %d\n", p.Timestamp, cyan(strings.Repeat("▇", width)), p.Value)
	}
}
