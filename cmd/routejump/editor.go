package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Replaceable for testing.
var (
	getenvFunc    = os.Getenv
	runEditorFunc = func(name string, args []string) error {
		cmd := exec.Command(name, args...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
)

// editorArgs builds the command line that opens file at line:col with the
// user's $VISUAL or $EDITOR.
func editorArgs(file string, line, col int) (string, []string, error) {
	editor := strings.TrimSpace(getenvFunc("VISUAL"))
	if editor == "" {
		editor = strings.TrimSpace(getenvFunc("EDITOR"))
	}
	if editor == "" {
		return "", nil, fmt.Errorf("cannot open %s: set $VISUAL or $EDITOR", file)
	}

	fields := strings.Fields(editor)
	name, args := fields[0], fields[1:]

	position := file + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(col)
	switch strings.TrimSuffix(filepath.Base(name), ".exe") {
	case "code", "code-insiders", "codium", "cursor":
		args = append(args, "--goto", position)
	case "subl", "zed":
		args = append(args, position)
	case "idea", "phpstorm", "pstorm":
		args = append(args, "--line", strconv.Itoa(line), "--column", strconv.Itoa(col), file)
	default:
		args = append(args, "+"+strconv.Itoa(line), file)
	}
	return name, args, nil
}

func openInEditor(file string, line, col int) error {
	name, args, err := editorArgs(file, line, col)
	if err != nil {
		return err
	}
	if err := runEditorFunc(name, args); err != nil {
		return fmt.Errorf("run editor %s: %w", name, err)
	}
	return nil
}
