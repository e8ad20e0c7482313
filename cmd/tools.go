package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/perplexity-mcp/internal/config"
	"github.com/user/perplexity-mcp/internal/logging"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the registered tool descriptors as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewLoader().Load(nil)
		if err != nil {
			return exitWith(err)
		}

		// Descriptors don't need a credential or a live gateway
		registry, err := buildRegistry(cfg, logging.NewNopLogger())
		if err != nil {
			return exitWith(err)
		}

		out, err := json.MarshalIndent(registry.List(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
