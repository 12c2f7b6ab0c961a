//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These are installed globally via `go install` rather than tracked in go.mod,
// since they are development tools, not runtime dependencies.
package tools

// Development tools (install via `go install`):
//
// Air - Live reload while working on the site and console
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
