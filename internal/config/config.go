// Package config loads the CLI configuration from a config file, a .env file
// and OSCLIENT_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/angelospk/opensubtitles-go/internal/constants"
)

// Configuration keys.
const (
	KeyAPIKey    = "opensubtitles.apikey"
	KeyUserAgent = "opensubtitles.useragent"
	KeyUsername  = "opensubtitles.username"
	KeyPassword  = "opensubtitles.password"
	KeyServer    = "opensubtitles.server"
	KeyTimeout   = "opensubtitles.timeout"
	KeySession   = "session.path"
	KeyLogLevel  = "log.level"

	EnvPrefix = "OSCLIENT"
	dirName   = ".osclient"
)

// Config is the resolved configuration of one CLI run.
type Config struct {
	OpenSubtitles OpenSubtitles `mapstructure:"opensubtitles"`
	Session       Session       `mapstructure:"session"`
	Log           Log           `mapstructure:"log"`
}

type OpenSubtitles struct {
	APIKey    string        `mapstructure:"apikey"`
	UserAgent string        `mapstructure:"useragent"`
	Username  string        `mapstructure:"username"`
	Password  string        `mapstructure:"password"`
	Server    string        `mapstructure:"server"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type Session struct {
	Path string `mapstructure:"path"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

// BaseURL resolves the configured server name or URL.
func (o OpenSubtitles) BaseURL() constants.Server {
	return constants.ServerByName(strings.ToLower(strings.TrimSpace(o.Server)))
}

// Dir is where the CLI keeps its config and session files.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// Init prepares v: defaults, env binding and the config file. cfgFile overrides
// the search for config.yaml in Dir() and the working directory. A missing
// config file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	_ = godotenv.Load()

	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyUserAgent, constants.DefaultUserAgent)
	v.SetDefault(KeyUsername, "")
	v.SetDefault(KeyPassword, "")
	v.SetDefault(KeyServer, "primary")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeySession, filepath.Join(Dir(), "session.db"))
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(Dir())
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file (%s): %w", v.ConfigFileUsed(), err)
	}
	return nil
}

// Load unmarshals v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.OpenSubtitles.Timeout < 0 {
		return nil, fmt.Errorf("invalid %s (must not be negative)", KeyTimeout)
	}
	return &cfg, nil
}

// RequireAPIKey fails with a hint on where to set the key.
func (c *Config) RequireAPIKey() error {
	if c.OpenSubtitles.APIKey == "" {
		return fmt.Errorf("OpenSubtitles API key not configured. Set '%s' in the config file or %s_OPENSUBTITLES_APIKEY", KeyAPIKey, EnvPrefix)
	}
	return nil
}
