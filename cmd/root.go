package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var debugFlag bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "perplexity-mcp",
	Short: "MCP server for Perplexity-backed research tools",
	Long: `A Model Context Protocol server exposing research and documentation
tools backed by the Perplexity API: general search, documentation lookup,
API discovery, deprecation analysis, and deep research with citations.

The server speaks line-delimited JSON-RPC on stdin/stdout.`,
	Version: "1.0.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}
