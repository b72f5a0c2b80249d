package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"isolation/config"
	"isolation/experiments"
)

var arenaConfigPath string

var arenaCmd = &cobra.Command{
	Use:   "arena",
	Short: "Run an arena experiment from a config file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(arenaConfigPath)
		if err != nil {
			return err
		}
		dir, err := experiments.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "results written to %s\n", dir)
		return nil
	},
}

func init() {
	arenaCmd.Flags().StringVarP(&arenaConfigPath, "config", "c", "arena.yaml", "experiment config file")
	rootCmd.AddCommand(arenaCmd)
}
