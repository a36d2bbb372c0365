// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/chatview/internal/config"
)

// newConfigCommand builds "chatview config" and its subcommands.
func newConfigCommand(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Args:  cobra.NoArgs,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, *f, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, *f)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func runConfigInit(cmd *cobra.Command, f flags, force bool) error {
	path, err := configFilePath(f)
	if err != nil {
		return configError(err)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return &CommandError{
			Action: "init config",
			Code:   ExitGeneralError,
			Err:    fmt.Errorf("%s already exists (use --force to overwrite)", path),
		}
	}

	if err := config.SaveTOML(config.Default(), path); err != nil {
		return &CommandError{Action: "init config", Code: ExitGeneralError, Err: err}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, f flags) error {
	if _, err := loadConfig(f); err != nil {
		return configError(err)
	}
	return config.WriteTOML(cmd.OutOrStdout(), config.Global())
}
