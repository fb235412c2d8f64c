package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnana997/routejump/pkg/artisan"
	"github.com/gnana997/routejump/pkg/config"
	"github.com/gnana997/routejump/pkg/jump"
	"github.com/gnana997/routejump/pkg/util"
)

// Replaceable for testing.
var getwdFunc = os.Getwd

const configHint = "Hint: set the route listing command with `routejump config set-command \"<command>\"`,\n" +
	"the --command flag, or ROUTEJUMP_ARTISAN_COMMAND (e.g. \"sail artisan\" or \"/usr/bin/php artisan\")."

// newLogger builds the stderr logger from the global flags.
func (a *app) newLogger() (*slog.Logger, error) {
	level, err := util.ParseLogLevel(a.logLevel)
	if err != nil {
		return nil, err
	}
	format, err := util.ParseLogFormat(a.logFormat)
	if err != nil {
		return nil, err
	}
	logger := util.NewLogger(util.LoggerConfig{Level: level, Format: format, Output: a.stderr})
	util.SetDefault(logger)
	return logger, nil
}

// projectRoot returns --root, or the nearest ancestor of the working
// directory containing an artisan file, or the working directory itself.
func (a *app) projectRoot() (string, error) {
	if a.root != "" {
		return filepath.Abs(a.root)
	}

	wd, err := getwdFunc()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return findProjectRoot(wd), nil
}

func findProjectRoot(start string) string {
	for dir := start; ; {
		if info, err := statFunc(filepath.Join(dir, "artisan")); err == nil && !info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// loadConfig resolves the project root and command prefix.
func (a *app) loadConfig(logger *slog.Logger) (config.Loader, *config.Config, error) {
	root, err := a.projectRoot()
	if err != nil {
		return config.Loader{}, nil, err
	}
	loader := config.Loader{Root: root, Flag: a.command, Logger: logger}
	cfg, err := loader.Load()
	if err != nil {
		return loader, nil, err
	}
	logger.Debug("Resolved configuration", "root", cfg.Root, "command", cfg.ArtisanCommand, "source", cfg.Source)
	return loader, cfg, nil
}

// newService wires the workflow for the current project.
func (a *app) newService(logger *slog.Logger, provider jump.ConfigProvider) (*jump.Service, func(), error) {
	return jump.NewProjectService(provider, jump.Options{
		Timeout: a.timeout,
		Include: a.include,
		Exclude: a.exclude,
		Logger:  logger,
	})
}

// setup is the common prologue of the workflow commands.
func (a *app) setup() (*slog.Logger, *jump.Service, func(), error) {
	logger, err := a.newLogger()
	if err != nil {
		return nil, nil, nil, err
	}
	_, cfg, err := a.loadConfig(logger)
	if err != nil {
		return nil, nil, nil, err
	}
	svc, closeFn, err := a.newService(logger, jump.StaticConfig{Config: cfg})
	if err != nil {
		return nil, nil, nil, err
	}
	return logger, svc, closeFn, nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printError writes err to stderr with a configuration hint where useful.
func (a *app) printError(err error) {
	fmt.Fprintf(a.stderr, "Error: %v\n", err)

	var workDir *artisan.WorkDirError
	switch {
	case jump.IsConfigurationError(err):
		fmt.Fprintln(a.stderr)
		fmt.Fprintln(a.stderr, configHint)
	case errors.As(err, &workDir):
		fmt.Fprintln(a.stderr, "Hint: pass the Laravel project directory with --root.")
	}
}
