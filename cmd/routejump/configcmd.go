package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnana997/routejump/pkg/config"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the route listing command for this project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showConfig()
		},
	}

	setCmd := &cobra.Command{
		Use:   "set-command <command>",
		Short: "Persist the command prefix in .routejump/config.yaml",
		Example: `  routejump config set-command "php artisan"
  routejump config set-command "docker compose exec app php artisan"
  routejump config set-command "/usr/local/bin/php artisan"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.projectRoot()
			if err != nil {
				return err
			}
			if err := config.Save(root, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Saved artisan command to %s\n", config.Path(root))
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove the persisted command so the default applies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.projectRoot()
			if err != nil {
				return err
			}
			if err := config.Reset(root); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Reset artisan command (default: %s)\n", config.DefaultArtisanCommand)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showConfig()
		},
	}

	cmd.AddCommand(setCmd, resetCmd, showCmd)
	return cmd
}

func (a *app) showConfig() error {
	logger, err := a.newLogger()
	if err != nil {
		return err
	}
	_, cfg, err := a.loadConfig(logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "root:            %s\n", cfg.Root)
	fmt.Fprintf(a.stdout, "artisan_command: %s\n", cfg.ArtisanCommand)
	fmt.Fprintf(a.stdout, "source:          %s\n", cfg.Source)
	fmt.Fprintf(a.stdout, "config file:     %s\n", config.Path(cfg.Root))
	return nil
}
