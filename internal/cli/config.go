package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (MONTAGUE_*)
3. Config file (~/.montague/config.yaml)
4. Defaults`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path := a.vcfg.ConfigFileUsed(); path != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", path)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file found\n\n")
			}
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("error marshaling config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	configCmd.AddCommand(showCmd)
	return configCmd
}
