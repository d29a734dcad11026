package main

// ---------------------------------------------------------------------------
// cmd_alerts.go — list alerts, acknowledge one
// ---------------------------------------------------------------------------

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/opscon-project/opscon/internal/core"
	"github.com/rs/zerolog"
)

func cmdAlerts(args []string) {
	if len(args) > 0 && (args[0] == "ack" || args[0] == "acknowledge") {
		cmdAlertsAck(args[1:])
		return
	}

	fs := flag.NewFlagSet("alerts", flag.ExitOnError)
	configPath := fs.String("config", "configs/default.yaml", "Config file path")
	backend := fs.String("backend", "", "Backend base URL override")
	severity := fs.String("severity", "", "Filter by severity: low, medium, high, critical")
	alertType := fs.String("type", "", "Filter by alert type")
	unread := fs.Bool("unread", false, "Only unacknowledged alerts")
	search := fs.String("search", "", "Free-text filter over id/title/message")
	format := fs.String("format", "table", "Output format: table, json, csv")
	output := fs.String("output", "", "Write output to file")
	fs.Parse(args)

	cfg := loadConfig(*configPath, *backend)
	client := core.NewClient(cfg, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	alerts, err := client.FetchAlerts(ctx)
	if err != nil {
		errorf("%v", err)
	}

	query := core.AlertQuery{
		Type:       *alertType,
		UnreadOnly: *unread,
		Search:     *search,
	}
	if *severity != "" {
		sev, ok := core.ParseSeverity(*severity)
		if !ok {
			errorf("unknown severity %q", *severity)
		}
		query.Severity = &sev
	}
	filtered := core.FilterAlerts(core.NewSnapshot(alerts), query)

	w, cleanup := outputWriter(*output)
	defer cleanup()

	switch parseFormat(*format) {
	case FormatJSON:
		data, _ := json.MarshalIndent(filtered, "", "  ")
		fmt.Fprintln(w, string(data))
	case FormatCSV:
		rows := make([][]string, 0, len(filtered))
		for _, a := range filtered {
			rows = append(rows, []string{
				a.ID, a.Severity.String(), a.Type, a.Title, a.CameraID,
				fmt.Sprintf("%v", a.Acknowledged), a.CreatedAt,
			})
		}
		writeCSV(w, []string{"id", "severity", "type", "title", "camera", "acknowledged", "created_at"}, rows)
	default:
		tbl := NewTable(w, "ID", "SEV", "TYPE", "TITLE", "ACK", "CREATED")
		for _, a := range filtered {
			ack := ""
			if a.Acknowledged {
				ack = "✓"
				if a.AcknowledgedBy != "" {
					ack += " " + a.AcknowledgedBy
				}
			}
			tbl.AddRow(a.ID, a.Severity.String(), a.Type, a.Title, ack, a.CreatedAt)
		}
		tbl.Render()
		fmt.Fprintf(w, "%d alerts\n", len(filtered))
	}
}

func cmdAlertsAck(args []string) {
	fs := flag.NewFlagSet("alerts ack", flag.ExitOnError)
	configPath := fs.String("config", "configs/default.yaml", "Config file path")
	backend := fs.String("backend", "", "Backend base URL override")
	user := fs.String("user", "", "Operator username")
	action := fs.String("action", "", "Action-taken note sent with the acknowledgment")
	fs.Parse(args)

	if fs.NArg() < 1 {
		errorf("usage: opscon alerts ack <alert-id> [--user NAME] [--action NOTE]")
	}
	alertID := fs.Arg(0)

	cfg := loadConfig(*configPath, *backend)
	logger := zerolog.Nop()
	client := core.NewClient(cfg, logger)
	store := core.NewStore(logger)
	co := core.NewCoordinator(store, client, nil, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	alerts, err := client.FetchAlerts(ctx)
	if err != nil {
		errorf("%v", err)
	}
	store.ApplyAlerts(alerts)

	op := core.NewOperator(operatorName(*user))
	err = co.Acknowledge(ctx, alertID, op.Actor(*action))
	switch {
	case errors.Is(err, core.ErrAlertNotFound):
		errorf("alert %s not found", alertID)
	case err != nil:
		// The local view already shows it acknowledged; the post failed.
		warnf("acknowledge not confirmed by backend: %v", err)
		warnf("it will reconcile on the next poll — retry with the same command if needed")
	default:
		fmt.Printf("%s alert %s acknowledged by %s\n", green("✓"), alertID, op.Username)
	}
}
