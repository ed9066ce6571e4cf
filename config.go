package sonet

import (
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/jointwt/sonet/timeline"
)

// Config contains the client configuration parameters
type Config struct {
	URI             string        `yaml:"uri" default:"http://localhost:8080/api"`
	Store           string        `yaml:"store"`
	PageSize        int           `yaml:"page_size" default:"10"`
	ProfileCacheTTL time.Duration `yaml:"profile_cache_ttl" default:"5m"`
	RefreshInterval string        `yaml:"refresh_interval" default:"@every 5m"`
	Debug           bool          `yaml:"debug"`

	HTTPClient *http.Client      `yaml:"-"`
	Notifier   timeline.Notifier `yaml:"-"`
}

// DefaultStore returns the default token store under the user's home
// directory, falling back to the working directory
func DefaultStore() string {
	home, err := homedir.Dir()
	if err != nil {
		log.WithError(err).Warn("error finding home directory")
		home = "."
	}
	return "bitcask://" + filepath.Join(home, ".sonet", "db")
}

// NewConfig returns a Config with every default applied
func NewConfig() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		log.WithError(err).Error("error applying config defaults")
	}
	if cfg.Store == "" {
		cfg.Store = DefaultStore()
	}
	return cfg
}

// Load loads a configuration from the given path
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to the provided path
func (c *Config) Save(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		f.Close()
		return err
	}

	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}

	if err = f.Sync(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
