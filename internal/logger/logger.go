// Package logger provides the small set of tag-prefixed stdout
// printers used throughout the renderer, following the teacher's
// `log.Printf("[TAG] ...")` convention but collected into named
// functions instead of scattered call sites.
package logger

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Info prints a neutral status line tagged with tag.
func Info(tag, msg string) {
	fmt.Printf("[%s] %s\n", tag, msg)
}

// Success prints a completed-step line tagged with tag.
func Success(tag, msg string) {
	fmt.Printf("[%s] OK: %s\n", tag, msg)
}

// Warn prints a recoverable-problem line tagged with tag.
func Warn(tag, msg string) {
	fmt.Printf("[%s] WARN: %s\n", tag, msg)
}

// Error prints a failure line tagged with tag.
func Error(tag, msg string) {
	fmt.Printf("[%s] ERROR: %s\n", tag, msg)
}

// Banner prints a single-line startup banner naming version, or a bare
// separator if version is empty.
func Banner(version string) {
	if version == "" {
		fmt.Println(strings.Repeat("=", 40))
		return
	}
	fmt.Printf("=== sovmap %s ===\n", version)
}

// Section prints a titled divider separating phases of a run (load,
// propagate, render, label) in CLI output.
func Section(title string) {
	fmt.Printf("--- %s ---\n", title)
}

// Stats prints a labeled count, rendering n with thousands separators
// via go-humanize so large pixel/owner counts stay readable.
func Stats(key string, n int) {
	fmt.Printf("%s: %s\n", key, humanize.Comma(int64(n)))
}
