package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/shipforge-go/internal/application/design"
	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	domainDesign "github.com/andrescamacho/shipforge-go/internal/domain/design"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
	"github.com/andrescamacho/shipforge-go/internal/infrastructure/config"
)

// NewDesignCommand creates the design command with subcommands
func NewDesignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Create and edit ship designs",
		Long: `Create ship designs and install or remove catalog components.

Every addition is validated against the design rules; an addition that fails any rule
is rejected and the design is left unchanged. Warnings are reported but never block.

Commands that take --design fall back to the default set with 'design use'.

Examples:
  shipforge design create --name Lancer --class Frigate --use
  shipforge design add --component laser --layer outer --mod damage=1.2
  shipforge design remove --instance <instance-id>
  shipforge design validate
  shipforge design stats
  shipforge design logistics
  shipforge design list`,
	}

	cmd.AddCommand(newDesignCreateCommand())
	cmd.AddCommand(newDesignAddCommand())
	cmd.AddCommand(newDesignRemoveCommand())
	cmd.AddCommand(newDesignValidateCommand())
	cmd.AddCommand(newDesignStatsCommand())
	cmd.AddCommand(newDesignLogisticsCommand())
	cmd.AddCommand(newDesignListCommand())
	cmd.AddCommand(newDesignUseCommand())

	return cmd
}

func newDesignCreateCommand() *cobra.Command {
	var name, className string
	var use bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty design of a ship class",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Send(cmd.Context(), &design.CreateDesignCommand{Name: name, ClassName: className})
			if err != nil {
				return err
			}
			bp := resp.(*design.CreateDesignResponse).Design

			fmt.Fprintf(cmd.OutOrStdout(), "Created design %s (%s)\n", bp.Name, bp.ClassName)
			fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", bp.ID)

			if use {
				return setDefaultDesign(cmd.OutOrStdout(), bp.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Design name (required)")
	cmd.Flags().StringVar(&className, "class", "", "Ship class (required)")
	cmd.Flags().BoolVar(&use, "use", false, "Make the new design the default")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("class")

	return cmd
}

func newDesignAddCommand() *cobra.Command {
	var designID, componentID, layer string
	var mods []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Install a catalog component into a design",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveDesignID(designID)
			if err != nil {
				return err
			}
			modifiers, err := parseModifiers(mods)
			if err != nil {
				return err
			}

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			formatter := NewTreeFormatter(false)
			resp, err := app.Send(cmd.Context(), &design.AddComponentCommand{
				DesignID:    id,
				ComponentID: componentID,
				Layer:       layer,
				Modifiers:   modifiers,
			})
			if err != nil {
				var rejected *shared.DesignRejectedError
				if errors.As(err, &rejected) {
					fmt.Fprintf(cmd.OutOrStdout(), "Rejected %s:\n", rejected.ComponentID)
					for _, failure := range rejected.Failures {
						fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", failure)
					}
				}
				return err
			}
			added := resp.(*design.AddComponentResponse)

			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s in %s\n", componentID, strings.ToUpper(layer))
			fmt.Fprintf(cmd.OutOrStdout(), "  Instance: %s\n", added.InstanceID)
			fmt.Fprintf(cmd.OutOrStdout(), "  Mass:     %s\n", formatNumber(added.Stats.Mass))
			if warnings := onlyWarnings(added.Verdicts); len(warnings) > 0 {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatVerdicts(warnings))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&designID, "design", "", "Design ID (default: user config)")
	cmd.Flags().StringVar(&componentID, "component", "", "Catalog component ID (required)")
	cmd.Flags().StringVar(&layer, "layer", "", "Layer: core, inner, outer or armor (required)")
	cmd.Flags().StringArrayVar(&mods, "mod", nil, "Instance modifier stat=factor (repeatable)")
	cmd.MarkFlagRequired("component")
	cmd.MarkFlagRequired("layer")

	return cmd
}

func newDesignRemoveCommand() *cobra.Command {
	var designID, instanceID string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Uninstall a component instance from a design",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveDesignID(designID)
			if err != nil {
				return err
			}

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Send(cmd.Context(), &design.RemoveComponentCommand{DesignID: id, InstanceID: instanceID})
			if err != nil {
				return err
			}
			removed := resp.(*design.RemoveComponentResponse)

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", removed.ComponentID, instanceID)
			fmt.Fprintf(cmd.OutOrStdout(), "  Mass: %s\n", formatNumber(removed.Stats.Mass))
			return nil
		},
	}

	cmd.Flags().StringVar(&designID, "design", "", "Design ID (default: user config)")
	cmd.Flags().StringVar(&instanceID, "instance", "", "Installed instance ID (required)")
	cmd.MarkFlagRequired("instance")

	return cmd
}

func newDesignValidateCommand() *cobra.Command {
	var designID string
	var color bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run every design rule and print the verdicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveDesignID(designID)
			if err != nil {
				return err
			}

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Send(cmd.Context(), &design.ValidateDesignQuery{DesignID: id})
			if err != nil {
				return err
			}
			result := resp.(*design.ValidateDesignResponse)

			fmt.Fprint(cmd.OutOrStdout(), NewTreeFormatter(color).FormatVerdicts(result.Verdicts))
			if !result.Valid {
				return fmt.Errorf("design %s is invalid", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Design is valid")
			return nil
		},
	}

	cmd.Flags().StringVar(&designID, "design", "", "Design ID (default: user config)")
	cmd.Flags().BoolVar(&color, "color", false, "Colorize verdicts")

	return cmd
}

func newDesignStatsCommand() *cobra.Command {
	var designID string
	var color bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a design's layers and derived stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveDesignID(designID)
			if err != nil {
				return err
			}

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Send(cmd.Context(), &design.GetDesignStatsQuery{DesignID: id})
			if err != nil {
				return err
			}
			result := resp.(*design.GetDesignStatsResponse)

			out := cmd.OutOrStdout()
			fmt.Fprint(out, NewTreeFormatter(color).FormatDesign(result))
			fmt.Fprintln(out)
			printStats(out, result.Stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&designID, "design", "", "Design ID (default: user config)")
	cmd.Flags().BoolVar(&color, "color", false, "Colorize the layer tree")

	return cmd
}

func newDesignLogisticsCommand() *cobra.Command {
	var designID string

	cmd := &cobra.Command{
		Use:   "logistics",
		Short: "Show per-resource capacity, rates and endurance",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveDesignID(designID)
			if err != nil {
				return err
			}

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Send(cmd.Context(), &design.GetLogisticsQuery{DesignID: id})
			if err != nil {
				return err
			}
			rows := resp.(*design.GetLogisticsResponse).Rows

			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No resources")
				return nil
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "Resource\tCapacity\tCurrent\tLevel\tGeneration\tConstant\tMax\tEndurance (const)\tEndurance (max)")
			fmt.Fprintln(w, "────────\t────────\t───────\t─────\t──────────\t────────\t───\t─────────────────\t───────────────")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.Resource,
					formatNumber(r.Capacity),
					formatNumber(r.Current),
					formatPercent(r.Level/100),
					formatNumber(r.Generation),
					formatNumber(r.ConstantUsage),
					formatNumber(r.MaxUsage),
					formatFixed(r.ConstantEndurance),
					formatFixed(r.MaxEndurance),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&designID, "design", "", "Design ID (default: user config)")

	return cmd
}

func newDesignListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored designs",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Send(cmd.Context(), &design.ListDesignsQuery{})
			if err != nil {
				return err
			}
			designs := resp.(*design.ListDesignsResponse).Designs

			if len(designs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No designs found")
				return nil
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tName\tClass\tComponents")
			fmt.Fprintln(w, "──\t────\t─────\t──────────")
			for _, bp := range designs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", bp.ID, bp.Name, bp.ClassName, len(bp.Components))
			}
			return w.Flush()
		},
	}
}

func newDesignUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <design-id>",
		Short: "Set the default design for commands without --design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setDefaultDesign(cmd.OutOrStdout(), args[0])
		},
	}
}

func setDefaultDesign(out io.Writer, designID string) error {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return err
	}
	if err := handler.SetDefaultDesign(designID); err != nil {
		return fmt.Errorf("failed to save default design: %w", err)
	}
	fmt.Fprintf(out, "Default design set to %s\n", designID)
	return nil
}

// parseModifiers turns repeated stat=factor flags into instance modifiers
func parseModifiers(raw []string) (ability.Modifiers, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	mods := make(ability.Modifiers, len(raw))
	for _, entry := range raw {
		stat, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid modifier %q: expected stat=factor", entry)
		}
		factor, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid modifier %q: %w", entry, err)
		}
		mods[ability.Stat(strings.ToLower(strings.TrimSpace(stat)))] = factor
	}
	if err := mods.Validate(); err != nil {
		return nil, err
	}
	return mods, nil
}

func onlyWarnings(verdicts []domainDesign.Verdict) []domainDesign.Verdict {
	var out []domainDesign.Verdict
	for _, v := range verdicts {
		if v.Status == domainDesign.StatusWarning {
			out = append(out, v)
		}
	}
	return out
}

func printStats(out io.Writer, s ship.DerivedStats) {
	w := newTable(out)
	fmt.Fprintf(w, "Mass\t%s\n", formatNumber(s.Mass))
	fmt.Fprintf(w, "Hit points\t%s\n", formatNumber(s.HitPoints))
	fmt.Fprintf(w, "Radius\t%s\n", formatFixed(s.Radius))
	fmt.Fprintf(w, "Acceleration\t%s\n", formatFixed(s.Acceleration))
	fmt.Fprintf(w, "Turn rate\t%s deg/s\n", formatFixed(s.TurnRate))
	fmt.Fprintf(w, "Sensor / ECM\t%s / %s\n", formatFixed(s.SensorScore), formatFixed(s.ECMScore))
	fmt.Fprintf(w, "Defense score\t%s\n", formatFixed(s.DefenseScore))
	fmt.Fprintf(w, "Shields\t%s (+%s/s)\n", formatNumber(s.ShieldCapacity), formatNumber(s.ShieldRegeneration))
	fmt.Fprintf(w, "Crew\t%d required, %d available, %d capacity, %d life support\n",
		s.CrewRequired, s.CrewAvailable, s.CrewCapacity, s.LifeSupport)
	fmt.Fprintf(w, "Command & control\t%t\n", s.HasCommandAndControl)
	fmt.Fprintf(w, "Active weapons\t%d of %d\n", len(s.ActiveWeapons()), len(s.Weapons))
	w.Flush()
}
