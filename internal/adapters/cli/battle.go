package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/shipforge-go/internal/application/battle"
	"github.com/andrescamacho/shipforge-go/internal/domain/combat"
)

// NewBattleCommand creates the battle command with subcommands
func NewBattleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battle",
		Short: "Simulate engagements between stored designs",
		Long: `Simulate an engagement between two stored designs and keep the report.

The attacker starts at the origin facing the target, which sits --distance units away
facing back. The target always runs point defense against seekers; with --return-fire
it also shoots at the attacker. Unset flags fall back to the simulation config.

Examples:
  shipforge battle run --target <design-id>
  shipforge battle run --attacker <id> --target <id> --distance 400 --seed 7 --return-fire
  shipforge battle reports --limit 5
  shipforge battle show <report-id>`,
	}

	cmd.AddCommand(newBattleRunCommand())
	cmd.AddCommand(newBattleReportsCommand())
	cmd.AddCommand(newBattleShowCommand())

	return cmd
}

func newBattleRunCommand() *cobra.Command {
	var attackerID, targetID string
	var distance, tickSeconds float64
	var ticks int
	var seed uint64
	var returnFire bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one battle and print its report",
		RunE: func(cmd *cobra.Command, args []string) error {
			attacker, err := resolveDesignID(attackerID)
			if err != nil {
				return err
			}

			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if !cmd.Flags().Changed("distance") {
				distance = app.Config.Simulation.Distance
			}

			resp, err := app.Send(cmd.Context(), &battle.RunBattleCommand{
				AttackerDesignID: attacker,
				TargetDesignID:   targetID,
				Distance:         distance,
				Ticks:            ticks,
				Seed:             seed,
				TickSeconds:      tickSeconds,
				ReturnFire:       returnFire,
			})
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), resp.(*battle.RunBattleResponse).Report)
			return nil
		},
	}

	cmd.Flags().StringVar(&attackerID, "attacker", "", "Attacker design ID (default: user config)")
	cmd.Flags().StringVar(&targetID, "target", "", "Target design ID (required)")
	cmd.Flags().Float64Var(&distance, "distance", 0, "Starting separation (default: simulation.distance)")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "Tick limit (default: simulation.max_ticks)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (default: simulation.seed)")
	cmd.Flags().Float64Var(&tickSeconds, "tick", 0, "Timestep in seconds (default: simulation.tick_seconds)")
	cmd.Flags().BoolVar(&returnFire, "return-fire", false, "Let the target shoot back")
	cmd.MarkFlagRequired("target")

	return cmd
}

func newBattleReportsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List recent battle reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Send(cmd.Context(), &battle.ListReportsQuery{Limit: limit})
			if err != nil {
				return err
			}
			reports := resp.(*battle.ReportsResponse).Reports

			if len(reports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No battle reports found")
				return nil
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tWhen\tAttacker\tTarget\tResult\tTicks\tHit Rate")
			fmt.Fprintln(w, "──\t────\t────────\t──────\t──────\t─────\t────────")
			for _, r := range reports {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
					r.ID,
					r.CreatedAt.Format("2006-01-02 15:04:05"),
					shortID(r.AttackerDesignID),
					shortID(r.TargetDesignID),
					r.Result,
					r.Ticks,
					formatPercent(r.Tally.HitRate()),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of reports")

	return cmd
}

func newBattleShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <report-id>",
		Short: "Show one battle report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Send(cmd.Context(), &battle.GetReportQuery{ReportID: args[0]})
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), resp.(*battle.ReportsResponse).Reports[0])
			return nil
		},
	}
}

func printReport(out io.Writer, r *combat.Report) {
	fmt.Fprintf(out, "Battle %s\n", r.ID)
	fmt.Fprintf(out, "  Result:   %s after %d ticks (%ss simulated)\n", r.Result, r.Ticks, formatFixed(r.Elapsed))
	fmt.Fprintf(out, "  Attacker: %s, %s hp left\n", r.AttackerDesignID, formatFixed(r.AttackerHitPoints))
	fmt.Fprintf(out, "  Target:   %s, %s hp and %s shields left\n",
		r.TargetDesignID, formatFixed(r.TargetHitPoints), formatFixed(r.TargetShields))
	fmt.Fprintf(out, "  Setup:    distance %s, seed %d, tick %ss\n",
		formatNumber(r.Distance), r.Seed, formatNumber(r.TickSeconds))

	t := r.Tally
	fmt.Fprintln(out)
	w := newTable(out)
	fmt.Fprintf(w, "Shots\t%d\n", t.Shots)
	fmt.Fprintf(w, "Hits\t%d (%s)\n", t.Hits, formatPercent(t.HitRate()))
	fmt.Fprintf(w, "Beam hits\t%d of %d\n", t.BeamHits, t.BeamShots)
	fmt.Fprintf(w, "Projectiles\t%d fired, %d impacts\n", t.ProjectilesFired, t.ProjectileImpacts)
	fmt.Fprintf(w, "Seekers\t%d launched, %d impacted, %d intercepted, %d expired\n",
		t.SeekersLaunched, t.SeekersImpacted, t.SeekersIntercepted, t.SeekersExpired)
	fmt.Fprintf(w, "Vehicles launched\t%d\n", t.VehiclesLaunched)
	fmt.Fprintf(w, "Damage\t%s shield, %s reduced, %s hull\n",
		formatFixed(t.ShieldDamage), formatFixed(t.ReducedDamage), formatFixed(t.HullDamage))
	w.Flush()

	if len(t.Outcomes) == 0 {
		return
	}
	outcomes := make([]string, 0, len(t.Outcomes))
	for o := range t.Outcomes {
		outcomes = append(outcomes, string(o))
	}
	sort.Strings(outcomes)

	fmt.Fprintln(out)
	w = newTable(out)
	fmt.Fprintln(w, "Outcome\tCount")
	fmt.Fprintln(w, "───────\t─────")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%s\t%d\n", o, t.Outcomes[combat.FireOutcome(o)])
	}
	w.Flush()
}
