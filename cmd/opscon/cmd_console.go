package main

// ---------------------------------------------------------------------------
// cmd_console.go — live operator console
//
// Starts the sync engine (per-kind poll loops into the entity store) and
// redraws a terminal view on a fixed cadence. No external TUI library —
// ANSI escape codes only.
// ---------------------------------------------------------------------------

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/opscon-project/opscon/internal/core"
)

func cmdConsole(args []string) {
	fs := flag.NewFlagSet("console", flag.ExitOnError)
	configPath := fs.String("config", "configs/default.yaml", "Config file path")
	backend := fs.String("backend", "", "Backend base URL override")
	refreshStr := fs.String("refresh", "2s", "Screen redraw interval")
	user := fs.String("user", "", "Operator username (role is derived from it)")
	fs.Parse(args)

	refresh, err := time.ParseDuration(*refreshStr)
	if err != nil {
		errorf("invalid refresh interval %q: %v", *refreshStr, err)
	}

	cfg := loadConfig(*configPath, *backend)
	engine, err := core.NewEngine(cfg)
	if err != nil {
		errorf("%v", err)
	}
	if err := engine.Start(); err != nil {
		errorf("%v", err)
	}
	defer engine.Shutdown()

	op := core.NewOperator(operatorName(*user))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Hide cursor
	fmt.Print("\033[?25l")
	defer fmt.Print("\033[?25h")

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	renderConsole(engine, op)
	for {
		select {
		case <-sigCh:
			clearScreen()
			fmt.Print("\033[?25h")
			fmt.Fprintf(os.Stderr, "%s Console closed.\n", dim("▸"))
			return
		case <-ticker.C:
			renderConsole(engine, op)
		}
	}
}

func clearScreen() {
	fmt.Print("\033[2J\033[H")
}

func degradedTag(degraded bool) string {
	if degraded {
		return yellow(" [stale]")
	}
	return ""
}

func renderConsole(engine *core.Engine, op core.Operator) {
	clearScreen()

	now := time.Now().Format("15:04:05")
	fmt.Printf("  %s  %s  %s  %s  %s\n", bold("OPSCON"), dim("•"), dim(now),
		dim("•"), dim(fmt.Sprintf("%s (%s)", op.Username, op.Role)))
	fmt.Printf("  %s\n\n", dim("Press Ctrl+C to exit"))

	store := engine.Store

	// Alerts section — unread first, newest layout from the backend
	alertSnap := store.Alerts()
	unread := core.FilterAlerts(alertSnap, core.AlertQuery{UnreadOnly: true})
	fmt.Printf("  %s  %s%s\n", bold("ALERTS"),
		dim(fmt.Sprintf("%d total, %d unread", alertSnap.Len(), len(unread))),
		degradedTag(alertSnap.Degraded))
	for i, a := range core.FilterAlerts(alertSnap, core.AlertQuery{}) {
		if i >= 8 {
			fmt.Printf("  %s\n", dim(fmt.Sprintf("… %d more", alertSnap.Len()-8)))
			break
		}
		marker := severityColor(a.Severity)("●")
		title := a.Title
		if a.Acknowledged {
			marker = dim("○")
			title = dim(title)
		}
		fmt.Printf("  %s %-10s %-8s %s\n", marker, a.ID, a.Severity.String(), title)
	}
	fmt.Println()

	// Incidents section
	incSnap := store.Incidents()
	active := core.FilterIncidents(incSnap, core.IncidentQuery{Status: core.IncidentActive})
	fmt.Printf("  %s  %s%s\n", bold("INCIDENTS"),
		dim(fmt.Sprintf("%d total, %d active", incSnap.Len(), len(active))),
		degradedTag(incSnap.Degraded))
	for i, inc := range incSnap.Ordered() {
		if i >= 5 {
			break
		}
		fmt.Printf("  %s %-10s %-11s %s %s\n",
			severityColor(inc.Severity)("●"), inc.ID, string(inc.Status),
			inc.Title, dim(inc.Location))
	}
	fmt.Println()

	// Teams section
	teamSnap := store.Teams()
	avail := core.FilterTeams(teamSnap, core.TeamQuery{Status: core.TeamAvailable})
	fmt.Printf("  %s  %s%s\n", bold("TEAMS"),
		dim(fmt.Sprintf("%d available / %d", len(avail), teamSnap.Len())),
		degradedTag(teamSnap.Degraded))
	for _, tm := range teamSnap.Ordered() {
		marker := green("●")
		switch tm.Status {
		case core.TeamDeployed:
			marker = yellow("●")
		case core.TeamUnavailable:
			marker = red("○")
		}
		line := fmt.Sprintf("%s %-10s %-22s %s", marker, tm.ID, tm.Name, string(tm.Status))
		if tm.CurrentIncident != "" {
			line += dim(" → " + tm.CurrentIncident)
		}
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()

	// Stats footer
	stats := store.Stats()
	if stats.Stats != nil {
		s := stats.Stats
		fmt.Printf("  %s  incidents %d/%d active  cameras %d  health %s%s\n",
			bold("SYSTEM"),
			s.Incidents.Active, s.Incidents.Total,
			s.System.CamerasOnline,
			strings.ToUpper(s.System.SystemHealth),
			degradedTag(stats.Degraded))
	}
}
