// Copyright (C) 2025 Mirotech Team
//
// This file is part of miropay-woocommerce-sdk.
//
// miropay-woocommerce-sdk is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// miropay-woocommerce-sdk is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with miropay-woocommerce-sdk.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/client"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/sdk"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable
const EnvPrefix = "MIROPAY"

// DefaultBaseURL is the production processor endpoint
const DefaultBaseURL = "https://api.pallawan.com/v1"

// Keys
const (
	KeyBaseURL        = "base_url"
	KeyIdentifier     = "x_id"
	KeyPrivateKey     = "private_key"
	KeyPrivateKeyFile = "private_key_file"
	KeyMode           = "mode"
	KeyTimeout        = "timeout"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeySandboxAddr    = "sandbox.addr"
)

var allKeys = []string{
	KeyBaseURL, KeyIdentifier, KeyPrivateKey, KeyPrivateKeyFile, KeyMode,
	KeyTimeout, KeyLogLevel, KeyLogFormat, KeySandboxAddr,
}

var (
	ErrMissingIdentifier = errors.New("merchant identifier is not configured")
	ErrMissingPrivateKey = errors.New("private key is not configured")
)

// Config is the resolved configuration
type Config struct {
	BaseURL        string
	Identifier     string
	PrivateKey     string
	PrivateKeyFile string
	Mode           sdk.Mode
	Timeout        time.Duration
	Log            LogConfig
	Sandbox        SandboxConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type SandboxConfig struct {
	Addr string
}

// New returns a viper instance with defaults and environment bindings
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyMode, string(sdk.ModeLive))
	v.SetDefault(KeyTimeout, client.DefaultTimeout.String())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeySandboxAddr, "127.0.0.1:8080")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range allKeys {
		// BindEnv only fails without a key
		_ = v.BindEnv(key)
	}

	return v
}

// ReadFile reads path into v. With an empty path it looks for .miropay.yaml
// in the working and home directories and tolerates its absence.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".miropay")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && path == "" {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load resolves and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	timeout, err := time.ParseDuration(v.GetString(KeyTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyTimeout, err)
	}

	mode, err := sdk.ParseMode(v.GetString(KeyMode))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BaseURL:        strings.TrimSpace(v.GetString(KeyBaseURL)),
		Identifier:     strings.TrimSpace(v.GetString(KeyIdentifier)),
		PrivateKey:     v.GetString(KeyPrivateKey),
		PrivateKeyFile: strings.TrimSpace(v.GetString(KeyPrivateKeyFile)),
		Mode:           mode,
		Timeout:        timeout,
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
		},
		Sandbox: SandboxConfig{
			Addr: v.GetString(KeySandboxAddr),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values every command needs
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s %q: absolute URL required", KeyBaseURL, c.BaseURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("invalid %s %s: must be positive", KeyTimeout, c.Timeout)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid %s %q: must be console or json", KeyLogFormat, c.Log.Format)
	}

	return nil
}

// ValidateClient checks the merchant credentials needed to call the processor
func (c *Config) ValidateClient() error {
	if c.Identifier == "" {
		return ErrMissingIdentifier
	}
	if c.PrivateKey == "" && c.PrivateKeyFile == "" {
		return ErrMissingPrivateKey
	}
	return nil
}

// ResolvePrivateKey returns the PEM from PrivateKey or, if unset, from
// PrivateKeyFile
func (c *Config) ResolvePrivateKey() (string, error) {
	if c.PrivateKey != "" {
		return c.PrivateKey, nil
	}
	if c.PrivateKeyFile == "" {
		return "", ErrMissingPrivateKey
	}

	data, err := os.ReadFile(c.PrivateKeyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read private key file: %w", err)
	}
	return string(data), nil
}

// ClientConfig maps the settings onto client.Config. KeyPair, Logger and
// Registerer are left for the caller.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		BaseURL:    c.BaseURL,
		Identifier: c.Identifier,
		Timeout:    c.Timeout,
	}
}

// String omits the private key
func (c *Config) String() string {
	key := "unset"
	switch {
	case c.PrivateKey != "":
		key = "inline"
	case c.PrivateKeyFile != "":
		key = c.PrivateKeyFile
	}
	return fmt.Sprintf("base_url=%s x_id=%s mode=%s timeout=%s private_key=%s",
		c.BaseURL, c.Identifier, c.Mode, c.Timeout, key)
}
