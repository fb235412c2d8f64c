package main

import (
	"github.com/spf13/cobra"

	"github.com/gnana997/routejump/pkg/config"
	mcpserver "github.com/gnana997/routejump/pkg/mcp"
	"github.com/gnana997/routejump/pkg/mcplog"
)

func (a *app) serveCmd() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start an MCP server on stdin/stdout exposing find_route, jump_to_route and
list_routes. The project's .env and .routejump/config.yaml are watched and the
route listing command is reloaded when they change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.newLogger()
			if err != nil {
				return err
			}
			loader, _, err := a.loadConfig(logger)
			if err != nil {
				return err
			}

			watcher, err := config.NewWatcher(loader, logger)
			if err != nil {
				return err
			}
			if err := watcher.Start(); err != nil {
				logger.Warn("Config watcher disabled", "error", err)
			}
			defer watcher.Stop()

			svc, closeFn, err := a.newService(logger, watcher)
			if err != nil {
				return err
			}
			defer closeFn()

			callLog, err := mcplog.NewLogger(logFile)
			if err != nil {
				return err
			}
			if callLog != nil {
				defer callLog.Close()
			}

			logger.Info("Serving MCP on stdio", "root", loader.Root)
			return mcpserver.NewServer(svc, callLog).ServeStdio()
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "Append one JSON line per tool call to this file")
	return cmd
}
