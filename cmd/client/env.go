package main

import (
	"github.com/spf13/cobra"

	"github.com/evgeniy-krivenko/flomo-relay/internal/config"
)

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables the relay and the cli read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Usage(cmd.OutOrStdout())
			return nil
		},
	}
}
