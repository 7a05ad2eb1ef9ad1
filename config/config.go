// Package config loads the hub's config.toml with viper, and runs an
// interactive first-run wizard when no config file is present.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// HubConfig is the [hub] section: where the websocket server listens.
type HubConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SolutionFinderConfig is the [solution_finder] section. An empty Path
// disables AnalyzePc entirely.
type SolutionFinderConfig struct {
	Path string `yaml:"path"`
}

// LogConfig is the [log] section.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the hub's full configuration, loaded from config.toml.
type Config struct {
	Hub            HubConfig            `yaml:"hub"`
	SolutionFinder SolutionFinderConfig `yaml:"solution_finder"`
	Log            LogConfig            `yaml:"log"`
}

// Addr is the host:port the hub's websocket server should listen on.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Hub.Host, c.Hub.Port)
}

func defaults() Config {
	return Config{
		Hub:  HubConfig{Host: "localhost", Port: 3012},
		Log:  LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads path with viper, unmarshaling through an intermediate
// yaml pass the way reinforcement.FromYaml reconciles viper's own
// settings map into a concrete struct. If path does not exist, Load
// runs the interactive wizard against in/out instead.
func Load(path string, in io.Reader, out io.Writer) (Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("toml")
	vp.AddConfigPath(filepath.Dir(path))

	if err := vp.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		return runWizard(path, in, out)
	}

	spec, err := yaml.Marshal(vp.AllSettings())
	if err != nil {
		return Config{}, fmt.Errorf("config: remarshal: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(spec, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}

	return cfg, nil
}

// runWizard prompts for the three fields original_source's init_config
// collects, then persists them to path via viper.WriteConfigAs.
func runWizard(path string, in io.Reader, out io.Writer) (Config, error) {
	cfg := defaults()
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "No config file found; let's create one.")

	if host := prompt(scanner, out, fmt.Sprintf("hub host [%s]: ", cfg.Hub.Host)); host != "" {
		cfg.Hub.Host = host
	}

	if portStr := prompt(scanner, out, fmt.Sprintf("hub port [%d]: ", cfg.Hub.Port)); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid port %q: %w", portStr, err)
		}
		cfg.Hub.Port = port
	}

	cfg.SolutionFinder.Path = prompt(scanner, out, "solution finder path (blank to disable AnalyzePc): ")

	vp := viper.New()
	vp.SetConfigType("toml")
	vp.Set("hub.host", cfg.Hub.Host)
	vp.Set("hub.port", cfg.Hub.Port)
	vp.Set("solution_finder.path", cfg.SolutionFinder.Path)
	vp.Set("log.level", cfg.Log.Level)
	vp.Set("log.format", cfg.Log.Format)

	if err := vp.WriteConfigAs(path); err != nil {
		return Config{}, fmt.Errorf("config: write %s: %w", path, err)
	}

	return cfg, nil
}

func prompt(scanner *bufio.Scanner, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
