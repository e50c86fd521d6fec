package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"lab47.dev/crashlink/pkg/resolve"
	"lab47.dev/crashlink/pkg/rules"
	"lab47.dev/crashlink/pkg/target"
)

type Config struct {
	path string

	SDKRoot  string `json:"sdk-root"`
	Backend  string `json:"backend"`
	Platform string `json:"platform"`
	Disable  bool   `json:"disable"`
	FullIWYU bool   `json:"full-iwyu"`
}

const (
	DefaultConfigPath = "~/.config/crashlink/config.json"
	DefaultSDKRoot    = resolve.DefaultSDKRoot
	DefaultBackend    = string(target.DefaultBackend)
)

func defaults() *Config {
	return &Config{
		SDKRoot:  DefaultSDKRoot,
		Backend:  DefaultBackend,
		FullIWYU: true,
	}
}

// LoadConfig reads the config file named by CRASHLINK_CONFIG, or the
// default location, then applies environment overrides. A missing default
// file is not an error.
func LoadConfig() (*Config, error) {
	if loc := os.Getenv("CRASHLINK_CONFIG"); loc != "" {
		return loadFile(loc)
	}

	path, err := homedir.Expand(DefaultConfigPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		return loadFile(path)
	}

	return updateFromEnv(defaults())
}

func loadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	cfg := defaults()

	err = json.NewDecoder(f).Decode(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding config %s", path)
	}

	cfg.path = path

	if cfg.SDKRoot == "" {
		cfg.SDKRoot = DefaultSDKRoot
	}

	if cfg.Backend == "" {
		cfg.Backend = DefaultBackend
	}

	return updateFromEnv(cfg)
}

func updateFromEnv(cfg *Config) (*Config, error) {
	if path := os.Getenv("CRASHLINK_SDK_ROOT"); path != "" {
		path, err := homedir.Expand(path)
		if err != nil {
			return nil, err
		}

		cfg.SDKRoot = path
	}

	if backend := os.Getenv("CRASHLINK_BACKEND"); backend != "" {
		cfg.Backend = backend
	}

	if platform := os.Getenv("CRASHLINK_PLATFORM"); platform != "" {
		cfg.Platform = platform
	}

	for name, dst := range map[string]*bool{
		"CRASHLINK_DISABLE":   &cfg.Disable,
		"CRASHLINK_FULL_IWYU": &cfg.FullIWYU,
	} {
		val := os.Getenv(name)
		if val == "" {
			continue
		}

		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", name)
		}

		*dst = b
	}

	return cfg, nil
}

// Path is the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Input builds the resolver input. An empty platform falls back to the
// configured one, then to the host.
func (c *Config) Input(platform string) (resolve.Input, error) {
	if platform == "" {
		platform = c.Platform
	}

	var (
		p   target.Platform
		err error
	)

	if platform == "" {
		p, err = target.Host()
		if err != nil {
			return resolve.Input{}, errors.Wrapf(err, "detecting host platform")
		}
	} else {
		p, err = target.ParsePlatform(platform)
		if err != nil {
			return resolve.Input{}, err
		}
	}

	b, err := target.ParseBackend(c.Backend)
	if err != nil {
		return resolve.Input{}, err
	}

	return resolve.Input{
		SDKRoot:  c.SDKRoot,
		Platform: p,
		Backend:  b,
		Disable:  c.Disable,
	}, nil
}

func (c *Config) Capability() rules.Capability {
	return rules.Capability{FullIWYU: c.FullIWYU}
}
