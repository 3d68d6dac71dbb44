// Package logging redirects the process's stdout/stderr to the amiwb log
// file at startup, truncating it if it has grown past a configured cap.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// DefaultMaxBytes caps amiwb.log at 5 MiB, per spec.md §6.
const DefaultMaxBytes = 5 * 1024 * 1024

// L is the process-wide logger every subsystem writes through.
var L = log.New(os.Stderr, "[amiwb] ", log.Ldate|log.Lmicroseconds)

// Init opens (truncating if oversized) the log file at path, replacing
// os.Stdout and os.Stderr's underlying file descriptors with it via dup2,
// so output from any library that writes directly to fd 1/2 is captured
// too. It returns the opened file so the caller can close it at shutdown.
func Init(path string, maxBytes int64) (*os.File, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging.Init: mkdir: %w", err)
	}

	flag := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if fi, err := os.Stat(path); err == nil && fi.Size() > maxBytes {
		flag = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging.Init: open: %w", err)
	}

	if err := unix.Dup2(int(f.Fd()), int(os.Stdout.Fd())); err != nil {
		return nil, fmt.Errorf("logging.Init: dup2 stdout: %w", err)
	}
	if err := unix.Dup2(int(f.Fd()), int(os.Stderr.Fd())); err != nil {
		return nil, fmt.Errorf("logging.Init: dup2 stderr: %w", err)
	}

	L.SetOutput(os.Stderr)
	return f, nil
}
