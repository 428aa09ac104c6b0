package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Learning catalogue
	CatalogueBaseURL string        `mapstructure:"catalogue_base_url"`
	CatalogueToken   string        `mapstructure:"catalogue_token"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout"`
	HTTPMaxAttempts  int           `mapstructure:"http_max_attempts"`

	LogMode string `mapstructure:"log_mode"`
	Workers int    `mapstructure:"workers"`

	// SFTP drop for catalogue exports
	SFTPHost                  string `mapstructure:"sftp_host"`
	SFTPPort                  int    `mapstructure:"sftp_port"`
	SFTPUser                  string `mapstructure:"sftp_user"`
	SFTPPass                  string `mapstructure:"sftp_pass"`
	SFTPDir                   string `mapstructure:"sftp_dir"`
	SFTPInsecureIgnoreHostKey bool   `mapstructure:"sftp_insecure_ignore_hostkey"`
	SFTPKnownHosts            string `mapstructure:"sftp_known_hosts"`
}

var keys = []string{
	"catalogue_base_url", "catalogue_token", "http_timeout", "http_max_attempts",
	"log_mode", "workers",
	"sftp_host", "sftp_port", "sftp_user", "sftp_pass", "sftp_dir",
	"sftp_insecure_ignore_hostkey", "sftp_known_hosts",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalogue_base_url", "http://localhost:9001")
	v.SetDefault("http_timeout", "30s")
	v.SetDefault("http_max_attempts", 4)
	v.SetDefault("log_mode", "development")
	v.SetDefault("workers", 4)
	v.SetDefault("sftp_port", 22)
	v.SetDefault("sftp_dir", "/inbound")
	v.SetDefault("sftp_insecure_ignore_hostkey", true)
}

// Load reads the environment (CATALOGUE_BASE_URL, SFTP_HOST, ...) and, when path is
// not empty, a config file whose keys are the same names in lower case.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about during Unmarshal.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: bind: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.CatalogueBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("catalogue_base_url %q is not an absolute url", c.CatalogueBaseURL)
	}
	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	if c.HTTPMaxAttempts <= 0 {
		return errors.New("http_max_attempts must be positive")
	}
	return nil
}
