package store

import (
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the store path plus the optional remote mirror settings.
type Config interface {
	BasePath() string
	Remote() RemoteConfig
}

// RemoteConfig describes the optional best-effort mirror backend. When
// Enabled is false (the default) every mirror call is a local no-op.
type RemoteConfig struct {
	URL     string
	Enabled bool
	Timeout time.Duration
}

// LoadConfig reads .strive config (yaml implicit) from the working directory
// or STRIVE_CONFIG_PATH, with STRIVE_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.strive.db")
	viper.SetDefault("remote.url", "")
	viper.SetDefault("remote.enabled", false)
	viper.SetDefault("remote.timeout", "5s")
	viper.SetConfigName(".strive") // .yaml is implicit
	viper.SetEnvPrefix("STRIVE")
	viper.AutomaticEnv()

	if override := os.Getenv("STRIVE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path: path,
		RemoteCfg: RemoteConfig{
			URL:     viper.GetString("remote.url"),
			Enabled: viper.GetBool("remote.enabled"),
			Timeout: viper.GetDuration("remote.timeout"),
		},
	}, nil
}

type fileConfig struct {
	Path      string       `json:"path"`
	RemoteCfg RemoteConfig `json:"remote"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Remote() RemoteConfig {
	return f.RemoteCfg
}
