//go:build tools
// +build tools

package tools

// Tracks the CLI tools used by the Makefile targets in go.mod

import (
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
)
