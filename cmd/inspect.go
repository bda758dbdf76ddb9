package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/diagram"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/model"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

var (
	inspectFile      string
	inspectShowStrip bool
	inspectShowWind  bool
	inspectShowNodes bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize the analysis model of a piping project",
	Long: `Build the analysis model of a project and print a summary: element
counts by type, fitting rewrites, restraints and load distribution.
At debug log level the parsed project is listed before the summary.

Examples:
  pipemodel inspect --file project.yaml
  pipemodel inspect -f project.yaml --strip --wind
  pipemodel inspect -f project.yaml --nodes --log-level debug`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectFile, "file", "f", "", "Path to project file [required]")
	inspectCmd.MarkFlagRequired("file")

	inspectCmd.Flags().BoolVar(&inspectShowStrip, "strip", false, "Show ASCII pipe strips")
	inspectCmd.Flags().BoolVar(&inspectShowWind, "wind", false, "Show wind exposure by direction")
	inspectCmd.Flags().BoolVar(&inspectShowNodes, "nodes", false, "List restrained nodes")
}

func runInspect(cmd *cobra.Command, args []string) error {
	p, err := loadProject(inspectFile)
	if err != nil {
		return err
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		p.Print(cmd.OutOrStdout())
	}
	doc, stats, err := buildModel(p)
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), doc, stats)
	return nil
}

func printSummary(out io.Writer, doc *model.Document, stats *model.Stats) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "                 ANALYSIS MODEL SUMMARY")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  Model:  %s\n", doc.ID)
	if doc.LineNo != "" {
		fmt.Fprintf(out, "  Line:   %s\n", doc.LineNo)
	}
	fmt.Fprintf(out, "  System: %s\n", doc.SystemNo)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "ELEMENTS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	counts := make(map[piping.ElementType]int)
	lengths := make(map[piping.ElementType]float64)
	for i, e := range doc.SortedElements() {
		counts[e.Type]++
		lengths[e.Type] += doc.Members[i].Length
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Type\tCount\tLength (m)\n")
	fmt.Fprintf(w, "  ────\t─────\t──────────\n")
	for _, t := range types {
		et := piping.ElementType(t)
		fmt.Fprintf(w, "  %s\t%d\t%.3f\n", t, counts[et], lengths[et]/1000)
	}
	w.Flush()
	fmt.Fprintln(out)

	if len(stats.FittingsApplied)+len(stats.FittingsSkipped) > 0 {
		fmt.Fprintln(out, "FITTINGS:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Kind\tRewritten\tSkipped\n")
		for _, k := range []piping.FittingKind{piping.KindElbow, piping.KindReturn, piping.KindReducer, piping.KindTee, piping.KindCap} {
			a, s := stats.FittingsApplied[k], stats.FittingsSkipped[k]
			if a+s == 0 {
				continue
			}
			fmt.Fprintf(w, "  %s\t%d\t%d\n", k, a, s)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "LOADS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Table\tApplied\tDropped\tNodes\tElements\n")
	for _, t := range []struct {
		name string
		acc  *model.Accumulator
	}{
		{"dead", doc.DeadLoad},
		{"live", doc.LiveLoad},
		{"wind", doc.WindLoads.Accumulator},
	} {
		fmt.Fprintf(w, "  %s\t%d\t%d\t%d\t%d\n", t.name, stats.LoadsApplied[t.name], stats.LoadsDropped[t.name], len(t.acc.PointLoads), len(t.acc.UDLs))
	}
	w.Flush()
	fmt.Fprintln(out)

	if inspectShowNodes && len(doc.BeamNodes) > 0 {
		fmt.Fprintln(out, "RESTRAINED NODES:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Node\tCategory\tSupports\tMaster\n")
		for _, n := range doc.SortedNodes() {
			bn, ok := doc.BeamNodes[n.Label]
			if !ok {
				continue
			}
			master := "-"
			if bn.MasterNode != nil {
				master = fmt.Sprint(*bn.MasterNode)
			}
			var supports []string
			for _, r := range bn.Restraints {
				supports = append(supports, r.Type)
			}
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n", n.Label, bn.Category, strings.Join(supports, ", "), master)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if inspectShowStrip {
		fmt.Fprint(out, diagram.DrawPipeStrip(doc, 50))
		fmt.Fprintln(out)
	}
	if inspectShowWind {
		fmt.Fprint(out, diagram.DrawWindBars(doc.WindLoads.Exposure))
		fmt.Fprint(out, diagram.DrawWindGraph(doc.WindLoads.Exposure))
		fmt.Fprintln(out)
	}

	fmt.Fprint(out, diagram.DrawSummaryBox("MODEL", []string{
		fmt.Sprintf("Pipes:      %d", stats.Pipes),
		fmt.Sprintf("Nodes:      %d", stats.Nodes),
		fmt.Sprintf("Elements:   %d", stats.Elements),
		fmt.Sprintf("Restraints: %d", stats.Restraints),
		fmt.Sprintf("Slug loads: %d", stats.SlugLoads),
	}))
	if stats.UnresolvedMasters > 0 {
		fmt.Fprintf(out, "  ⚠ %d slave support(s) without a master node\n", stats.UnresolvedMasters)
	}
	fmt.Fprintln(out)
}
