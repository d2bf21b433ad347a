package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Command returns the "config" command with its "init" and "show"
// subcommands. The config path is read from the persistent --config flag of
// the root command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(initCommand(), showCommand())
	return cmd
}

func initCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configFlag(cmd)
			if err != nil {
				return err
			}
			written, err := WriteDefault(path, force)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Wrote", written)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configFlag(cmd)
			if err != nil {
				return err
			}
			cfg, unknown, err := Load(path)
			if err != nil {
				return err
			}
			for _, key := range unknown {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: unknown config key %s\n", key)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func configFlag(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Lookup("config") == nil {
		return "", nil
	}
	return cmd.Flags().GetString("config")
}
