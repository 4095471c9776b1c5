package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/airframe/battsizer/pkg/sizing"
	"github.com/airframe/battsizer/pkg/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	p := sizing.DefaultParams()

	root := &cobra.Command{
		Use:   "battsizer",
		Short: "Multirotor battery sizing via constrained optimization",
		Long: `battsizer picks the battery capacity that minimizes vehicle cost minus a
weighted endurance reward, subject to a weight budget, an endurance floor and
capacity bounds. The solve is a local SQP fit from a fixed starting point; an
infeasible constraint set is reported, never retried.

Examples:
  battsizer
  battsizer --max-weight 8.5 --min-flight-time 12
  battsizer quick --battery-cost 450 --guess 2.5`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := p.Optimize()
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res, true)
		},
	}

	f := root.Flags()
	f.Float64Var(&p.FrameCost, "frame-cost", p.FrameCost, "airframe cost")
	f.Float64Var(&p.ElectronicsCost, "electronics-cost", p.ElectronicsCost, "electronics cost")
	f.Float64Var(&p.FrameMass, "frame-mass", p.FrameMass, "airframe mass (kg)")
	f.Float64Var(&p.ElectronicsMass, "electronics-mass", p.ElectronicsMass, "electronics mass (kg)")
	f.Float64Var(&p.KBattery, "k-battery", p.KBattery, "battery mass per capacity (kg/Ah)")
	f.Float64Var(&p.Thrust, "thrust", p.Thrust, "thrust derating on the battery mass slope")
	f.Float64Var(&p.MassOffset, "mass-offset", p.MassOffset, "battery pack overhead mass (kg)")
	f.Float64Var(&p.EnergyDensity, "energy-density", p.EnergyDensity, "battery energy density")
	f.Float64Var(&p.PropEfficiency, "prop-efficiency", p.PropEfficiency, "propulsive efficiency (0..1]")
	f.Float64Var(&p.PropCount, "prop-count", p.PropCount, "number of motors")
	f.Float64Var(&p.MinCapacity, "min-capacity", p.MinCapacity, "capacity lower bound (Ah)")
	f.Float64Var(&p.MaxCapacity, "max-capacity", p.MaxCapacity, "capacity upper bound (Ah)")
	f.Float64Var(&p.MinFlightTime, "min-flight-time", p.MinFlightTime, "endurance floor (minutes)")
	f.Float64Var(&p.MaxTotalMass, "max-weight", p.MaxTotalMass, "total mass budget (kg)")
	f.Float64Var(&p.TimeWeight, "time-weight", p.TimeWeight, "objective trade-off: currency per minute of endurance")

	sp := sizing.DefaultSimpleParams()
	guess := 1.0

	quick := &cobra.Command{
		Use:   "quick",
		Short: "Coarse sizing over battery mass only",
		Long: `quick runs the coarse model: battery mass is the design variable, flight
time ignores the propulsion factor, and the only feasibility limit is the box
bound 0 <= mass <= 2*frame-mass.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := sp.OptimizeFrom(guess)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res, false)
		},
	}

	qf := quick.Flags()
	qf.Float64Var(&sp.FrameMass, "frame-mass", sp.FrameMass, "airframe mass (kg)")
	qf.Float64Var(&sp.FrameCost, "frame-cost", sp.FrameCost, "airframe cost")
	qf.Float64Var(&sp.BatteryCostPerKg, "battery-cost", sp.BatteryCostPerKg, "battery cost per kg")
	qf.Float64Var(&sp.EnergyDensity, "energy-density", sp.EnergyDensity, "battery energy density")
	qf.Float64Var(&sp.TimeWeight, "time-weight", sp.TimeWeight, "objective trade-off: currency per minute of endurance")
	qf.Float64Var(&guess, "guess", guess, "initial battery mass guess (kg)")

	root.AddCommand(quick)
	return root
}

// printResult renders the solved design as a small table. The capacity row
// only applies to the full model, where X is a capacity rather than a mass.
func printResult(w io.Writer, res *sizing.Result, capacity bool) error {
	fmt.Fprintln(w, "Optimal solution found:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if capacity {
		c := types.AmpHours(res.X)
		fmt.Fprintf(tw, "Battery capacity:\t%s (%.0f mAh)\n", c, c.MilliampHours())
	}
	fmt.Fprintf(tw, "Battery mass:\t%s\n", res.BatteryMass)
	fmt.Fprintf(tw, "Total mass:\t%s\n", res.TotalMass)
	fmt.Fprintf(tw, "Flight time:\t%s (%.0f s)\n", res.FlightTime, res.FlightTime.Seconds())
	fmt.Fprintf(tw, "Total cost:\t%s\n", res.TotalCost)
	fmt.Fprintf(tw, "Iterations:\t%d\n", res.NumIter)
	return tw.Flush()
}
