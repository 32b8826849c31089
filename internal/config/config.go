// Copyright (c) 2026 Keymaster Team
// Keymaster - SSH key management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads keyman settings from keyman.yaml, KEYMAN_* environment
// variables and command line flags, and writes the default config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the user-facing configuration.
type Config struct {
	// Home overrides the home directory taken from the environment.
	Home string `mapstructure:"home" yaml:"home,omitempty"`
	// AppName names the storage directory (~/.<app_name>).
	AppName string `mapstructure:"app_name" yaml:"app_name"`
	// LinkName is the file in ~/.ssh that points at the active key.
	LinkName string `mapstructure:"link_name" yaml:"link_name"`
	Language string `mapstructure:"language" yaml:"language"`
}

// Defaults holds the values used when nothing else sets a key.
func Defaults() map[string]any {
	return map[string]any{
		"home":      "",
		"app_name":  "keyman",
		"link_name": "id_rsa",
		"language":  "en",
	}
}

// DefaultConfig is Defaults as a Config, the content of a freshly written
// config file.
func DefaultConfig() Config {
	d := Defaults()
	return Config{
		Home:     d["home"].(string),
		AppName:  d["app_name"].(string),
		LinkName: d["link_name"].(string),
		Language: d["language"].(string),
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "keyman")
		default:
			configDir = "/etc/keyman"
		}
	} else {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(userDir, "keyman")
	}

	return filepath.Join(configDir, "keyman.yaml"), nil
}

// LoadConfig builds a T from defaults, the first keyman.yaml found (explicit
// path, user config dir, system config dir, working directory), KEYMAN_*
// environment variables and the flags of cmd, in increasing precedence.
// Flag names map to keys with dashes turned into underscores. A missing
// config file is reported as viper.ConfigFileNotFoundError alongside the
// otherwise complete result.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFilePath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("keyman")
	v.SetConfigType("yaml")
	if configFilePath != nil {
		v.SetConfigFile(*configFilePath)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	var notFound error
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
		notFound = err
	}

	v.SetEnvPrefix("keyman")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	if bindErr != nil {
		return c, bindErr
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, notFound
}

// WriteConfigFile writes c as YAML to the user (or system) config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	return os.WriteFile(path, data, 0o600)
}
