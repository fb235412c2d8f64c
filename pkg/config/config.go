// Package config resolves the command prefix used to list routes.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultArtisanCommand is used when nothing else is configured.
	DefaultArtisanCommand = "php artisan"

	// EnvVar overrides the project file. It is also read from the project's .env.
	EnvVar = "ROUTEJUMP_ARTISAN_COMMAND"

	// DirName is the per-project settings directory under the root.
	DirName = ".routejump"

	// FileName is the settings file inside DirName.
	FileName = "config.yaml"
)

// Source records where the resolved command came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceDotenv  Source = "dotenv"
	SourceFile    Source = "file"
	SourceDefault Source = "default"
)

// ProjectFile holds the contents of .routejump/config.yaml.
//
// ArtisanCommand is a pointer so that an explicitly empty value is kept and
// reported as "not configured" rather than replaced by the default.
type ProjectFile struct {
	ArtisanCommand *string `yaml:"artisan_command"`
}

// Config is the resolved configuration for one project.
type Config struct {
	Root           string `json:"root"`
	ArtisanCommand string `json:"artisan_command"`
	Source         Source `json:"source"`
}

// Path returns the settings file path for root.
func Path(root string) string {
	return filepath.Join(root, DirName, FileName)
}

// ReadProjectFile reads .routejump/config.yaml under root.
// Returns nil (no error) if the file does not exist.
func ReadProjectFile(root string) (*ProjectFile, error) {
	data, err := os.ReadFile(Path(root))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", Path(root), err)
	}
	return &pf, nil
}

// Save persists the command prefix for root.
func Save(root, command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return fmt.Errorf("artisan command must not be empty; use reset to restore the default")
	}

	data, err := yaml.Marshal(&ProjectFile{ArtisanCommand: &command})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(root, DirName), 0755); err != nil {
		return fmt.Errorf("create %s: %w", DirName, err)
	}
	return os.WriteFile(Path(root), data, 0644)
}

// Reset removes the persisted command so the default applies again.
func Reset(root string) error {
	err := os.Remove(Path(root))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Loader resolves configuration in precedence order:
//  1. Flag (non-empty override)
//  2. ROUTEJUMP_ARTISAN_COMMAND from the process environment
//  3. ROUTEJUMP_ARTISAN_COMMAND from <root>/.env, read without exporting
//  4. artisan_command from <root>/.routejump/config.yaml
//  5. DefaultArtisanCommand
type Loader struct {
	Root   string
	Flag   string
	Logger *slog.Logger
}

// Replaceable for testing.
var lookupEnv = os.LookupEnv

// Load resolves the configuration.
func (l Loader) Load() (*Config, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := &Config{Root: l.Root}

	if v := strings.TrimSpace(l.Flag); v != "" {
		cfg.ArtisanCommand, cfg.Source = v, SourceFlag
		return cfg, nil
	}

	if v, ok := lookupEnv(EnvVar); ok && strings.TrimSpace(v) != "" {
		cfg.ArtisanCommand, cfg.Source = strings.TrimSpace(v), SourceEnv
		return cfg, nil
	}

	if v, ok := readDotenv(l.Root, logger); ok {
		cfg.ArtisanCommand, cfg.Source = v, SourceDotenv
		return cfg, nil
	}

	pf, err := ReadProjectFile(l.Root)
	if err != nil {
		return nil, err
	}
	if pf != nil && pf.ArtisanCommand != nil {
		cfg.ArtisanCommand, cfg.Source = strings.TrimSpace(*pf.ArtisanCommand), SourceFile
		return cfg, nil
	}

	cfg.ArtisanCommand, cfg.Source = DefaultArtisanCommand, SourceDefault
	return cfg, nil
}

// Load resolves the configuration for root with an optional flag override.
func Load(root, flag string) (*Config, error) {
	return Loader{Root: root, Flag: flag}.Load()
}

// readDotenv looks up EnvVar in the project's .env without touching the
// process environment. Laravel .env files that godotenv cannot parse are
// ignored.
func readDotenv(root string, logger *slog.Logger) (string, bool) {
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}

	values, err := godotenv.Read(path)
	if err != nil {
		logger.Debug("ignoring unparsable .env", "path", path, "error", err)
		return "", false
	}

	v := strings.TrimSpace(values[EnvVar])
	return v, v != ""
}
