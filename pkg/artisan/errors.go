package artisan

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCommandNotConfigured is returned when the command prefix is empty.
var ErrCommandNotConfigured = errors.New("artisan command is not configured")

// WorkDirError reports a project root that does not exist or is not a directory.
type WorkDirError struct {
	Path string
	Err  error
}

func (e *WorkDirError) Error() string {
	return fmt.Sprintf("working directory does not exist: %s", e.Path)
}

func (e *WorkDirError) Unwrap() error { return e.Err }

// ToolNotFoundError reports that the shell could not locate or start the
// configured executable.
type ToolNotFoundError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ToolNotFoundError) Error() string {
	msg := fmt.Sprintf("cannot run %q: executable not found; configure a fully qualified path (e.g. /usr/bin/php artisan)", e.Command)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\n" + s
	}
	return msg
}

func (e *ToolNotFoundError) Unwrap() error { return e.Err }

// CommandFailedError reports a non-zero exit of the route listing command.
type CommandFailedError struct {
	CommandLine string
	Dir         string
	ExitCode    int
	Stderr      string
}

func (e *CommandFailedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command failed with exit code %d\n", e.ExitCode)
	fmt.Fprintf(&b, "command: %s\n", e.CommandLine)
	fmt.Fprintf(&b, "directory: %s", e.Dir)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&b, "\nstderr:\n%s", s)
	}
	return b.String()
}
