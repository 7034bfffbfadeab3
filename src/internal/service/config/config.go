package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"alfredweb/src/internal/domain"
)

const (
	DefaultConfigFile = "alfred-web.toml"
	DefaultEnvFile    = ".env"

	EnvConfigFile = "ALFRED_WEB_CONFIG"
	EnvHost       = "ALFRED_WEB_HOST"
	EnvPort       = "ALFRED_WEB_PORT"
	EnvRoot       = "ALFRED_WEB_ROOT"
	EnvWatch      = "ALFRED_WEB_WATCH"
)

// Sources says where to look for overrides. Empty paths are skipped.
type Sources struct {
	ConfigFile string
	EnvFile    string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// DefaultSources looks in the working directory, honouring ALFRED_WEB_CONFIG.
func DefaultSources() Sources {
	configFile := os.Getenv(EnvConfigFile)
	if configFile == "" {
		configFile = DefaultConfigFile
	}
	return Sources{
		ConfigFile: configFile,
		EnvFile:    DefaultEnvFile,
		Getenv:     os.Getenv,
	}
}

type fileConfig struct {
	Host  *string `toml:"host"`
	Port  *int    `toml:"port"`
	Root  *string `toml:"root"`
	Watch *bool   `toml:"watch"`
}

func Defaults() domain.Config {
	return domain.Config{
		Port:        domain.DefaultPort,
		RootDir:     domain.DefaultRootDir,
		WatchAssets: true,
	}
}

// Load layers the TOML file, the .env file and the process environment over
// Defaults, later layers winning. Missing files are fine.
func Load(src Sources) (domain.Config, error) {
	cfg := Defaults()

	if src.ConfigFile != "" {
		if err := applyFile(&cfg, src.ConfigFile); err != nil {
			return cfg, err
		}
	}

	dotenv := map[string]string{}
	if src.EnvFile != "" {
		vals, err := godotenv.Read(src.EnvFile)
		switch {
		case err == nil:
			dotenv = vals
			log.Printf("Loaded %d settings from %s", len(vals), src.EnvFile)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("read %s: %w", src.EnvFile, err)
		}
	}

	getenv := src.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	if v := lookup(EnvHost); v != "" {
		cfg.Host = v
	}
	if v := lookup(EnvPort); v != "" {
		cfg.Port = v
	}
	if v := lookup(EnvRoot); v != "" {
		cfg.RootDir = v
	}
	if v := lookup(EnvWatch); v != "" {
		watch, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvWatch, v, err)
		}
		cfg.WatchAssets = watch
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFile(cfg *domain.Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("parse %s: %w", path, err)
	}
	log.Printf("Loaded config from %s", path)

	if fc.Host != nil {
		cfg.Host = *fc.Host
	}
	if fc.Port != nil {
		cfg.Port = strconv.Itoa(*fc.Port)
	}
	if fc.Root != nil {
		cfg.RootDir = *fc.Root
	}
	if fc.Watch != nil {
		cfg.WatchAssets = *fc.Watch
	}
	return nil
}

func Validate(cfg domain.Config) error {
	p, err := strconv.Atoi(cfg.Port)
	if err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("invalid port %q", cfg.Port)
	}
	if strings.TrimSpace(cfg.RootDir) == "" {
		return errors.New("root directory is empty")
	}
	return nil
}
