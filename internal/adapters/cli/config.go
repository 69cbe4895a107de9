package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/shipforge-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Shipforge configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (SF_* prefix, e.g. SF_CATALOG_PATH)
2. Config file (config.yaml)
3. Default values

User preferences (default design) are stored in ~/.shipforge/config.json

Examples:
  shipforge config show
  shipforge config show --yaml
  shipforge config clear-design`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigClearDesignCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// Load system config
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			if asYAML {
				display := *cfg
				display.Database.Password = maskSecret(display.Database.Password)
				display.Database.URL = maskPassword(display.Database.URL)
				data, err := yaml.Marshal(&display)
				if err != nil {
					return fmt.Errorf("failed to encode config: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			// Display configuration
			fmt.Fprintln(out, "Shipforge Configuration")
			fmt.Fprintln(out, "=======================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultDesignID != "" {
				fmt.Fprintf(out, "  Default Design:   %s\n", userCfg.DefaultDesignID)
			} else {
				fmt.Fprintf(out, "  Default Design:   (not set)\n")
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}
			fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Fprintln(out, "\nCatalog:")
			fmt.Fprintf(out, "  Path:             %s\n", cfg.Catalog.Path)
			fmt.Fprintf(out, "  Watch:            %t\n", cfg.Catalog.Watch)

			fmt.Fprintln(out, "\nSimulation:")
			fmt.Fprintf(out, "  Tick:             %ss\n", formatNumber(cfg.Simulation.TickSeconds))
			fmt.Fprintf(out, "  Max Ticks:        %d\n", cfg.Simulation.MaxTicks)
			fmt.Fprintf(out, "  Seed:             %d\n", cfg.Simulation.Seed)
			fmt.Fprintf(out, "  Distance:         %s\n", formatNumber(cfg.Simulation.Distance))

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			fmt.Fprintln(out, "\nServe:")
			fmt.Fprintf(out, "  PID file:         %s\n", cfg.Serve.PIDFile)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the effective configuration as YAML")

	return cmd
}

// newConfigClearDesignCommand creates the config clear-design subcommand
func newConfigClearDesignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-design",
		Short: "Clear default design setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultDesign(); err != nil {
				return fmt.Errorf("failed to clear default design: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Default design cleared")
			return nil
		},
	}
}

// maskPassword masks the password of a connection URL for display
func maskPassword(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}

func maskSecret(s string) string {
	if s == "" {
		return s
	}
	return "****"
}
