package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the component catalog",
		Long: `Inspect the component catalog loaded from catalog.path.

Malformed entries are skipped at load time; 'catalog check' lists them with the reason.

Examples:
  shipforge catalog list
  shipforge catalog list --ability SeekerWeapon
  shipforge catalog show laser-turret
  shipforge catalog classes
  shipforge catalog check`,
	}

	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogShowCommand())
	cmd.AddCommand(newCatalogClassesCommand())
	cmd.AddCommand(newCatalogCheckCommand())

	return cmd
}

func newCatalogListCommand() *cobra.Command {
	var abilityKind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog components",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Send(cmd.Context(), &catalog.ListComponentsQuery{AbilityKind: abilityKind})
			if err != nil {
				return err
			}
			list := resp.(*catalog.ListComponentsResponse)

			if len(list.Components) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No components found")
				return nil
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tName\tMass\tHP\tLayers\tAbilities")
			fmt.Fprintln(w, "──\t────\t────\t──\t──────\t─────────")
			for _, def := range list.Components {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					def.ID(),
					def.Name(),
					formatNumber(def.Mass()),
					formatNumber(def.HitPoints()),
					layerNames(def.AllowedLayers()),
					abilityNames(def),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&abilityKind, "ability", "", "Only components with this ability kind")

	return cmd
}

func newCatalogShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <component-id>",
		Short: "Show one component definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Send(cmd.Context(), &catalog.GetComponentQuery{ComponentID: args[0]})
			if err != nil {
				return err
			}
			def := resp.(*catalog.GetComponentResponse).Component

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Component: %s\n", def.ID())
			fmt.Fprintf(out, "  Name:       %s\n", def.Name())
			fmt.Fprintf(out, "  Mass:       %s\n", formatNumber(def.Mass()))
			fmt.Fprintf(out, "  Hit points: %s\n", formatNumber(def.HitPoints()))
			fmt.Fprintf(out, "  Layers:     %s\n", layerNames(def.AllowedLayers()))
			if def.Family() != "" {
				fmt.Fprintf(out, "  Family:     %s\n", def.Family())
			}
			if def.IsUnique() {
				fmt.Fprintln(out, "  Unique:     yes")
			}
			fmt.Fprintln(out, "  Abilities:")
			for _, a := range def.Abilities() {
				fmt.Fprintf(out, "    - %s %+v\n", a.Kind(), a)
			}
			return nil
		},
	}
}

func newCatalogClassesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List ship classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Send(cmd.Context(), &catalog.ListClassesQuery{})
			if err != nil {
				return err
			}
			classes := resp.(*catalog.ListClassesResponse).Classes

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "Class\tMax Mass\tLayer\tBudget\tRestriction")
			fmt.Fprintln(w, "─────\t────────\t─────\t──────\t───────────")
			for _, class := range classes {
				for i, spec := range class.Layers() {
					name, maxMass := "", ""
					if i == 0 {
						name, maxMass = class.Name(), formatNumber(class.MaxMass())
					}
					restriction := restrictionText(spec.Restriction)
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						name,
						maxMass,
						spec.Layer,
						formatNumber(class.LayerBudget(spec.Layer)),
						restriction,
					)
				}
			}
			return w.Flush()
		},
	}
}

func newCatalogCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the catalog and report skipped entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Send(cmd.Context(), &catalog.ListComponentsQuery{})
			if err != nil {
				return err
			}
			list := resp.(*catalog.ListComponentsResponse)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source:     %s\n", list.Source)
			fmt.Fprintf(out, "Components: %d\n", len(list.Components))
			fmt.Fprintf(out, "Skipped:    %d\n", len(list.Skipped))
			if len(list.Skipped) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			w := newTable(out)
			fmt.Fprintln(w, "Entry\tReason")
			fmt.Fprintln(w, "─────\t──────")
			for _, s := range list.Skipped {
				fmt.Fprintf(w, "%s\t%s\n", s.ID, s.Reason)
			}
			return w.Flush()
		},
	}
}

func layerNames(layers []component.Layer) string {
	if len(layers) == 0 {
		return "any"
	}
	names := make([]string, len(layers))
	for i, l := range layers {
		names[i] = string(l)
	}
	return strings.Join(names, ",")
}

func abilityNames(def *component.Definition) string {
	abilities := def.Abilities()
	names := make([]string, len(abilities))
	for i, a := range abilities {
		names[i] = string(a.Kind())
	}
	return strings.Join(names, ",")
}

func restrictionText(r ship.LayerRestriction) string {
	if r.IsZero() {
		return "-"
	}
	var parts []string
	if r.Family != "" {
		parts = append(parts, "family "+r.Family)
	}
	if r.IDPrefix != "" {
		parts = append(parts, "id "+r.IDPrefix+"*")
	}
	return strings.Join(parts, ", ")
}
