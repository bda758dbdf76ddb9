package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/asme"
)

var (
	// Unfactored results of one quantity per load type
	comboDead        float64
	comboLive        float64
	comboWind        float64
	comboSeismic     float64
	comboTemperature float64
	comboPressure    float64
	comboSlug        float64

	// Options
	comboShowAll    bool
	comboSimplified bool
)

var combinationsCmd = &cobra.Command{
	Use:   "combinations",
	Short: "Evaluate ASME B31.3 load combinations",
	Long: `Evaluate the default ASME B31.3 load combinations written into every
model document.

Provide unfactored results (a stress, a force or a displacement) for each
load type and this command computes the factored value of every
combination and the governing one.

Load Types:
  W    - Weight (dead load)
  L    - Live load
  WIN  - Wind load
  U    - Seismic load
  T1   - Thermal load
  P1   - Pressure
  SL   - Slug load

Examples:
  # Sustained check
  pipemodel combinations --dead 40 --pressure 25

  # Occasional cases
  pipemodel combinations --dead 40 --pressure 25 --temperature 60 --wind 12 --all`,
	Run: runCombinations,
}

func init() {
	rootCmd.AddCommand(combinationsCmd)

	combinationsCmd.Flags().Float64VarP(&comboDead, "dead", "d", 0, "Result due to weight")
	combinationsCmd.Flags().Float64VarP(&comboLive, "live", "l", 0, "Result due to live load")
	combinationsCmd.Flags().Float64VarP(&comboWind, "wind", "w", 0, "Result due to wind")
	combinationsCmd.Flags().Float64VarP(&comboSeismic, "seismic", "u", 0, "Result due to seismic load")
	combinationsCmd.Flags().Float64VarP(&comboTemperature, "temperature", "t", 0, "Result due to thermal load")
	combinationsCmd.Flags().Float64VarP(&comboPressure, "pressure", "p", 0, "Result due to pressure")
	combinationsCmd.Flags().Float64Var(&comboSlug, "slug", 0, "Result due to slug load")

	combinationsCmd.Flags().BoolVarP(&comboShowAll, "all", "a", false, "Show all load combination results")
	combinationsCmd.Flags().BoolVarP(&comboSimplified, "simplified", "s", false, "Use sustained and operating cases only")
}

func runCombinations(cmd *cobra.Command, args []string) {
	loads := asme.PrimaryLoads{
		Dead:        comboDead,
		Live:        comboLive,
		Wind:        comboWind,
		Seismic:     comboSeismic,
		Temperature: comboTemperature,
		Pressure:    comboPressure,
		Slug:        comboSlug,
	}

	if loads == (asme.PrimaryLoads{}) {
		fmt.Println("Error: Please provide at least one unfactored result.")
		fmt.Println("Use 'pipemodel combinations --help' for usage information.")
		return
	}

	combinations := asme.DefaultLoadCombinations()
	if comboSimplified {
		combinations = asme.SimplifiedCombinations
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          ASME B31.3 LOAD COMBINATIONS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("UNFACTORED RESULTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, l := range []struct {
		name  string
		value float64
	}{
		{"Weight (W)", loads.Dead},
		{"Live (L)", loads.Live},
		{"Wind (WIN)", loads.Wind},
		{"Seismic (U)", loads.Seismic},
		{"Thermal (T1)", loads.Temperature},
		{"Pressure (P1)", loads.Pressure},
		{"Slug (SL)", loads.Slug},
	} {
		if l.value != 0 {
			fmt.Fprintf(w, "  %s:\t%.2f\n", l.name, l.value)
		}
	}
	w.Flush()
	fmt.Println()

	value, governing := asme.Governing(loads, combinations)

	if comboShowAll {
		fmt.Println("LOAD COMBINATIONS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCase\tCombination\tValue\n")
		fmt.Fprintf(w, "  ─\t────\t───────────\t─────\n")
		for _, combo := range combinations {
			marker := ""
			if combo.ID == governing.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%.2f%s\n", combo.ID, combo.Category, combo.Description, combo.Combine(loads), marker)
		}
		w.Flush()
		fmt.Println()
	}

	fmt.Println("RESULT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	if governing.ID == "" {
		fmt.Println("  No combination gives a positive result.")
		fmt.Println()
		return
	}
	fmt.Printf("  Governing Combination: %s (%s, %s)\n", governing.ID, governing.Description, governing.Category)
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  GOVERNING VALUE = %.2f  \n", value)
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()
}
