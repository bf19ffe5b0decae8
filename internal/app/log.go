package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// debugLog is silent unless EnableDebugLog redirects it. The terminal belongs
// to the UI, so nothing is ever logged to stderr while running.
var debugLog = log.New(io.Discard, "", log.LstdFlags)

// EnableDebugLog appends log output to polyview.log under the user config
// directory and returns the file so the caller can close it.
func EnableDebugLog() (*os.File, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate log directory: %w", err)
	}
	dir = filepath.Join(dir, "polyview", "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "polyview.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	debugLog.SetOutput(f)
	debugLog.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}
