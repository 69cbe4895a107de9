package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shipforge",
		Short: "Shipforge - design ships from a component catalog and simulate battles",
		Long: `Shipforge builds ship designs out of catalog components, validates them against
the design rules and simulates engagements between stored designs.

Examples:
  shipforge catalog list --ability BeamWeapon
  shipforge design create --name Lancer --class Frigate
  shipforge design add --component laser --layer outer
  shipforge design validate
  shipforge design logistics
  shipforge battle run --attacker <design-id> --target <design-id> --distance 400
  shipforge battle reports
  shipforge serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./configs, /etc/shipforge)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewDesignCommand())
	rootCmd.AddCommand(NewBattleCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
