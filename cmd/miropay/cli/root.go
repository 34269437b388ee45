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

// Package cli implements the miropay command line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/client"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/config"
	"github.com/MirotechTeam/miropay-woocommerce-sdk/pkg/sdk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app holds state shared by all subcommands of one invocation
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// New creates the root command
func New() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:   "miropay",
		Short: "Signed client for the Miropay payment processor.",
		Long: `miropay talks to the Miropay processor API with Ed25519-signed requests.

Credentials come from flags, MIROPAY_* environment variables or a
.miropay.yaml config file. Every request carries the merchant identifier
(x-id) and a signature (x-signature) over "<METHOD> || <x-id> || /v1/<path>".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./.miropay.yaml or $HOME/.miropay.yaml)")
	flags.String("base-url", config.DefaultBaseURL, "processor base URL")
	flags.String("x-id", "", "merchant identifier")
	flags.String("private-key-file", "", "path to the merchant PEM private key")
	flags.String("mode", string(sdk.ModeLive), `payment mode ("live", "test")`)
	flags.Duration("timeout", client.DefaultTimeout, "request timeout")
	flags.String("log-level", "info", "minimum log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")

	_ = a.v.BindPFlag(config.KeyBaseURL, flags.Lookup("base-url"))
	_ = a.v.BindPFlag(config.KeyIdentifier, flags.Lookup("x-id"))
	_ = a.v.BindPFlag(config.KeyPrivateKeyFile, flags.Lookup("private-key-file"))
	_ = a.v.BindPFlag(config.KeyMode, flags.Lookup("mode"))
	_ = a.v.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	cmd.AddCommand(
		a.newCreateCmd(),
		a.newStatusCmd(),
		a.newCancelCmd(),
		a.newPublicKeysCmd(),
		a.newSignCmd(),
		a.newKeygenCmd(),
		a.newSandboxCmd(),
		newVersionCmd(),
	)

	return cmd
}

func (a *app) load() error {
	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded", zap.Stringer("config", cfg))
	return nil
}

// newSDK builds the signing client and SDK from the loaded configuration
func (a *app) newSDK() (*sdk.SDK, error) {
	if err := a.cfg.ValidateClient(); err != nil {
		return nil, err
	}

	pem, err := a.cfg.ResolvePrivateKey()
	if err != nil {
		return nil, err
	}

	clientCfg := a.cfg.ClientConfig()
	clientCfg.Logger = a.logger

	return sdk.NewFromPEM(clientCfg, pem, a.cfg.Mode, sdk.WithLogger(a.logger))
}

func printJSON(w io.Writer, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(encoded))
	return err
}
