package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"printpredict/logging"
)

// Config is the contents of config.yaml.
type Config struct {
	Http struct {
		Port           int           `yaml:"port"`
		Timeout        time.Duration `yaml:"timeout"`
		MaxRequestSize int64         `yaml:"max_request_size"`
	} `yaml:"http"`
	Model struct {
		Path string `yaml:"path"`
	} `yaml:"model"`
	Dataset struct {
		Path string `yaml:"path"`
	} `yaml:"dataset"`
	Session struct {
		MaxSessions int `yaml:"max_sessions"`
	} `yaml:"session"`
	Locale string         `yaml:"locale"`
	Watch  bool           `yaml:"watch"`
	Log    logging.Config `yaml:"log"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Http.Port = 8501
	cfg.Http.Timeout = 30 * time.Second
	cfg.Http.MaxRequestSize = 64 << 10
	cfg.Model.Path = "modelo_impressoras3D.json"
	cfg.Dataset.Path = "dataset_impressoras3D_12k.csv"
	cfg.Session.MaxSessions = 1024
	cfg.Locale = "pt-BR"
	cfg.Watch = true
	cfg.Log = logging.DefaultConfig()
	return cfg
}

// Load reads path on top of the defaults. A missing file is not an error.
// Relative model and dataset paths are resolved against the config file's
// directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.Model.Path = resolve(dir, cfg.Model.Path)
	cfg.Dataset.Path = resolve(dir, cfg.Dataset.Path)
	if cfg.Log.File != "" {
		cfg.Log.File = resolve(dir, cfg.Log.File)
	}
	return cfg, cfg.Validate()
}

// Locate returns config.yaml in the working directory, or in its parent when
// run from cmd/.
func Locate(name string) string {
	if _, err := os.Stat(name); errors.Is(err, os.ErrNotExist) {
		parent := filepath.Join("..", name)
		if _, err := os.Stat(parent); err == nil {
			return parent
		}
	}
	return name
}

func (c *Config) Validate() error {
	var err error
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("http.port %d out of range", c.Http.Port))
	}
	if c.Http.Timeout <= 0 {
		err = multierr.Append(err, errors.New("http.timeout must be positive"))
	}
	if c.Model.Path == "" {
		err = multierr.Append(err, errors.New("model.path is required"))
	}
	if c.Session.MaxSessions <= 0 {
		err = multierr.Append(err, errors.New("session.max_sessions must be positive"))
	}
	if _, perr := language.Parse(c.Locale); perr != nil {
		err = multierr.Append(err, fmt.Errorf("locale %q: %w", c.Locale, perr))
	}
	return err
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) || dir == "." {
		return path
	}
	return filepath.Join(dir, path)
}
