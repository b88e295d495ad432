package main

import (
	"fmt"
	"os"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

const colorReset = "\033[0m"

var statusStyles = map[statusKind]struct{ color, symbol string }{
	statusInfo:    {"\033[0;34m", "ℹ"},
	statusSuccess: {"\033[0;32m", "✓"},
	statusWarning: {"\033[1;33m", "⚠"},
	statusError:   {"\033[0;31m", "✗"},
}

// status prints one colored line; errors go to stderr
func status(kind statusKind, format string, a ...any) {
	style := statusStyles[kind]
	out := os.Stdout
	if kind == statusError {
		out = os.Stderr
	}
	fmt.Fprintf(out, "%s%s %s%s\n", style.color, style.symbol, fmt.Sprintf(format, a...), colorReset)
}

func header(title string) {
	fmt.Printf("\n%s=== %s ===%s\n", statusStyles[statusWarning].color, title, colorReset)
}
