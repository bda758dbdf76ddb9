package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/diagram"
)

var (
	plotFile   string
	plotView   string
	plotLabels bool
	plotWind   string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Export a view of the analysis model to an image",
	Long: `Draw the beam elements of a project's analysis model projected on a
global plane. Straight pipe, fitting bodies and valves are drawn in
different styles; restrained nodes are marked by category.

Views:
  plan       X right, Z up
  elevation  X right, Y up
  side       Z right, Y up

Examples:
  pipemodel plot -f project.yaml -o plan.png
  pipemodel plot -f project.yaml -o elevation.svg --view elevation --labels
  pipemodel plot -f project.yaml -o plan.pdf --wind wind.png`,
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVarP(&plotFile, "file", "f", "", "Path to project file [required]")
	plotCmd.MarkFlagRequired("file")

	plotCmd.Flags().StringP("output", "o", "model.png", "Image file (png, svg, pdf)")
	plotCmd.Flags().StringVar(&plotView, "view", string(diagram.Plan), "View: plan, elevation or side")
	plotCmd.Flags().BoolVar(&plotLabels, "labels", false, "Draw node labels")
	plotCmd.Flags().StringVar(&plotWind, "wind", "", "Also export the wind exposure chart to this file")
}

func runPlot(cmd *cobra.Command, args []string) error {
	view := diagram.View(plotView)
	switch view {
	case diagram.Plan, diagram.Elevation, diagram.Side:
	default:
		return fmt.Errorf("unknown view %q", plotView)
	}

	doc, _, err := buildProject(plotFile)
	if err != nil {
		return err
	}

	output := config.GetString("output")
	if err := diagram.ExportView(doc, view, output, plotLabels); err != nil {
		return fmt.Errorf("export %s view: %w", view, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ %s view exported to: %s\n", view, output)

	if plotWind != "" {
		if err := diagram.ExportWindChart(doc.WindLoads.Exposure, plotWind); err != nil {
			return fmt.Errorf("export wind chart: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  ✓ wind chart exported to: %s\n", plotWind)
	}
	return nil
}
