package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/gnana997/routejump/pkg/mcp"
)

var version = "0.1.0-dev"

// app carries global flags and I/O for every command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	root      string
	command   string
	logLevel  string
	logFormat string
	timeout   time.Duration
	include   []string
	exclude   []string
}

func main() {
	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(os.Args[1:]))
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "routejump",
		Short: "Jump from a Laravel URL to the controller method that handles it",
		Long: `routejump runs "<command> route:list --json" in a Laravel project, matches a
URL or path against the declared routes, and reports (or opens) the controller
method that handles it.

The command prefix defaults to "php artisan". Override it with --command, the
ROUTEJUMP_ARTISAN_COMMAND variable (process environment or the project's .env),
or "routejump config set-command".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.root, "root", "", "Laravel project root (default: nearest directory with an artisan file)")
	flags.StringVar(&a.command, "command", "", "Command prefix used to list routes (e.g. \"sail artisan\")")
	flags.StringVar(&a.logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	flags.StringVar(&a.logFormat, "log-format", "text", "Log format: text|json")
	flags.DurationVar(&a.timeout, "timeout", 60*time.Second, "Timeout for the route listing command (0 disables)")
	flags.StringSliceVar(&a.include, "include", nil, "Glob(s) limiting where controllers are searched (e.g. app/**)")
	flags.StringSliceVar(&a.exclude, "exclude", nil, "Glob(s) skipped while searching (default: vendor/**, node_modules/**, storage/**, ...)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "routejump %s\n", version)
		},
	}

	rootCmd.AddCommand(
		a.jumpCmd(),
		a.findCmd(),
		a.routesCmd(),
		a.configCmd(),
		a.serveCmd(),
		a.setupCmd(),
		versionCmd,
	)

	return rootCmd
}

// run executes the CLI with args and returns the process exit code.
func (a *app) run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := a.rootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		a.printError(err)
		return 1
	}
	return 0
}

func init() {
	mcpserver.Version = version
}
