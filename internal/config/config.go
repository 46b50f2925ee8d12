package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	Prefork         bool          `yaml:"prefork"`
	Variant         string        `yaml:"variant"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LoggerConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type LoadGenConfig struct {
	TargetURL string        `yaml:"target_url"`
	VUs       int           `yaml:"vus"`
	Duration  time.Duration `yaml:"duration"`
	Sleep     time.Duration `yaml:"sleep"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Config is shared by the echo servers and the load driver; each binary reads
// only the sections it needs.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logger  LoggerConfig  `yaml:"logger"`
	LoadGen LoadGenConfig `yaml:"loadgen"`
}

// Default returns the built-in configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            ":3000",
			ShutdownTimeout: 5 * time.Second,
		},
		Logger: LoggerConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		LoadGen: LoadGenConfig{
			TargetURL: "http://nginx/api/test",
			VUs:       10,
			Duration:  10 * time.Second,
			Sleep:     time.Second,
			Timeout:   5 * time.Second,
		},
	}
}

// Load reads the file named by CONFIG_PATH, or returns the defaults when it is unset.
func Load() Config {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return LoadFrom(p)
	}
	return Default()
}

// LoadFrom reads the YAML file at path on top of the defaults. It panics when the
// file cannot be read or holds invalid values.
func LoadFrom(path string) Config {
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("config: read %s: %v", path, err))
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		panic(fmt.Sprintf("config: parse %s: %v", path, err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: %s: %v", path, err))
	}
	return cfg
}

// Validate checks the server section. The loadgen section is checked by
// loadgen.Options.Validate when a run starts.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must not be empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	return nil
}
