// Package artisan runs the project's route listing command.
package artisan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// ListArgs is appended to the configured command prefix.
const ListArgs = "route:list --json"

const waitDelay = 2 * time.Second

// Request describes one route listing invocation.
type Request struct {
	// Command is the prefix, e.g. "php artisan" or "docker compose exec app php artisan".
	Command string
	// Dir is the project root the command runs in.
	Dir string
}

// CommandLine returns the full shell command line for the request.
func (r Request) CommandLine() string {
	return strings.TrimSpace(r.Command) + " " + ListArgs
}

// Lister runs the route listing command through the platform shell.
type Lister struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewLister creates a lister. A zero timeout lets the command run until it exits.
func NewLister(timeout time.Duration, logger *slog.Logger) *Lister {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lister{timeout: timeout, logger: logger}
}

// Replaceable for testing.
var (
	goos               = runtime.GOOS
	statFunc           = os.Stat
	commandContextFunc = exec.CommandContext
)

// List runs `<command> route:list --json` in req.Dir and returns its stdout.
// Both streams are read to completion before the exit status is inspected.
func (l *Lister) List(ctx context.Context, req Request) ([]byte, error) {
	if strings.TrimSpace(req.Command) == "" {
		return nil, ErrCommandNotConfigured
	}

	info, err := statFunc(req.Dir)
	if err != nil || !info.IsDir() {
		return nil, &WorkDirError{Path: req.Dir, Err: err}
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	line := req.CommandLine()
	name, args := shellCommand(goos, line)

	var stdout, stderr bytes.Buffer
	cmd := commandContextFunc(ctx, name, args...)
	cmd.Dir = req.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Children of the shell may keep the pipes open after it is killed.
	cmd.WaitDelay = waitDelay

	start := time.Now()
	l.logger.Debug("running route listing", "command", line, "dir", req.Dir)
	err = cmd.Run()
	l.logger.Debug("route listing finished",
		"command", line,
		"duration", time.Since(start),
		"stdout_bytes", stdout.Len(),
		"stderr_bytes", stderr.Len())

	if err == nil {
		return stdout.Bytes(), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("run %q: %w", line, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code == notFoundExitCode(goos) {
			return nil, &ToolNotFoundError{Command: line, Stderr: stderr.String(), Err: err}
		}
		return nil, &CommandFailedError{
			CommandLine: line,
			Dir:         req.Dir,
			ExitCode:    code,
			Stderr:      stderr.String(),
		}
	}

	// The shell itself could not be started.
	var pathErr *fs.PathError
	if errors.Is(err, exec.ErrNotFound) || errors.As(err, &pathErr) {
		return nil, &ToolNotFoundError{Command: line, Stderr: stderr.String(), Err: err}
	}
	return nil, fmt.Errorf("run %q: %w", line, err)
}

// shellCommand returns the shell invocation for line on the given OS.
func shellCommand(goos, line string) (string, []string) {
	if goos == "windows" {
		return "cmd", []string{"/C", line}
	}
	return "/bin/sh", []string{"-c", line}
}

// notFoundExitCode is the status a shell reports when it cannot find a command.
func notFoundExitCode(goos string) int {
	if goos == "windows" {
		return 9009
	}
	return 127
}
