package main

// ---------------------------------------------------------------------------
// helpers.go — TTY detection, color, error helpers, config loading
// ---------------------------------------------------------------------------

import (
	"fmt"
	"os"

	"github.com/opscon-project/opscon/internal/core"
)

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY(os.Stderr)
}

func ansi(code, s string) string {
	if !colorEnabled() {
		return s
	}
	return code + s + "\033[0m"
}

func red(s string) string    { return ansi("\033[91m", s) }
func yellow(s string) string { return ansi("\033[93m", s) }
func green(s string) string  { return ansi("\033[32m", s) }
func cyan(s string) string   { return ansi("\033[36m", s) }
func dim(s string) string    { return ansi("\033[90m", s) }
func bold(s string) string   { return ansi("\033[1m", s) }

func errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, red("error: ")+format+"\n", args...)
	os.Exit(1)
}

func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, yellow("warn: ")+format+"\n", args...)
}

// loadConfig reads the config file and applies the backend override.
// Flag wins over OPSCON_BACKEND_URL, which wins over the file.
func loadConfig(path, backendOverride string) *core.Config {
	if env := os.Getenv("OPSCON_CONFIG"); env != "" && path == "configs/default.yaml" {
		path = env
	}
	cfg, err := core.LoadConfig(path)
	if err != nil {
		errorf("loading config: %v", err)
	}
	if backendOverride == "" {
		backendOverride = os.Getenv("OPSCON_BACKEND_URL")
	}
	if backendOverride != "" {
		cfg.Backend.BaseURL = backendOverride
	}
	return cfg
}

// operatorName resolves the acting operator, preferring the flag, then
// OPSCON_USER, then the OS user.
func operatorName(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if e := os.Getenv("OPSCON_USER"); e != "" {
		return e
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "operator"
}

// severityColor maps severity to a display color.
func severityColor(sev core.Severity) func(string) string {
	switch sev {
	case core.SeverityCritical:
		return red
	case core.SeverityHigh:
		return yellow
	case core.SeverityMedium:
		return cyan
	default:
		return dim
	}
}
