package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/gnana997/routejump/pkg/route"
)

// Replaceable for testing.
var isTerminalFunc = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// promptMethod lists the targets and reads a choice, either its number or
// the method name.
func promptMethod(r io.Reader, w io.Writer, url string, targets []route.Target) (string, error) {
	fmt.Fprintf(w, "Multiple routes match %s:\n", url)
	for i, t := range targets {
		fmt.Fprintf(w, "  [%d] %-7s %s\n", i+1, t.Method, t.Action)
	}
	fmt.Fprintf(w, "Choose [1-%d]: ", len(targets))

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return "", fmt.Errorf("no method chosen")
	}
	answer := strings.TrimSpace(scanner.Text())
	if answer == "" {
		return "", fmt.Errorf("no method chosen")
	}

	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(targets) {
			return "", fmt.Errorf("choice %d out of range", n)
		}
		return targets[n-1].Method, nil
	}
	for _, t := range targets {
		if strings.EqualFold(t.Method, answer) {
			return t.Method, nil
		}
	}
	return "", fmt.Errorf("unknown choice %q", answer)
}
