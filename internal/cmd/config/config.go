// Package config provides the config command group.
package config

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ephemeris-labs/releasekit/internal/cmdutil"
	"github.com/ephemeris-labs/releasekit/internal/config"
)

// NewCmdConfig creates the config command group.
func NewCmdConfig(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage releasekit configuration",
	}

	cmd.AddCommand(newCmdInit(f))
	cmd.AddCommand(newCmdShow(f))

	return cmd
}

func newCmdInit(f *cmdutil.Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default releasekit.yaml to the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd := f.WorkDir
			if wd == "" {
				wd = "."
			}
			path := filepath.Join(wd, config.ConfigFileName)
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			cmd.Printf("wrote %s\n", path)
			return nil
		},
	}
}

func newCmdShow(f *cmdutil.Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.Config()
			if err != nil {
				return err
			}
			return cmdutil.WriteJSON(f.IOStreams.Out, cfg)
		},
	}
}
