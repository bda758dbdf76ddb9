package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/metrics"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/model"
	"github.com/dexterlegrand/threejs-asets-sub009/internal/piping"
)

var (
	buildFile    string
	buildCompact bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the analysis model document of a piping project",
	Long: `Convert a piping project (YAML or JSON) into the analysis model
document consumed by the structural solver.

Fittings are rewritten into body elements, every line is discretized under
the discretization limit, supports become node restraints and the load
tables are distributed to nodes and elements.

Examples:
  pipemodel build --file project.yaml
  pipemodel build -f project.json -o model.json --limit 1.5
  pipemodel build -f project.yaml --metrics-textfile /var/lib/node_exporter/pipemodel.prom`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildFile, "file", "f", "", "Path to project file [required]")
	buildCmd.MarkFlagRequired("file")

	buildCmd.Flags().StringP("output", "o", "", "Write the document to this file instead of stdout")
	buildCmd.Flags().String("metrics-textfile", "", "Write build metrics in the prometheus text format to this file")
	buildCmd.Flags().BoolVar(&buildCompact, "compact", false, "Write compact JSON")
}

func runBuild(cmd *cobra.Command, args []string) error {
	doc, stats, err := buildProject(buildFile)
	if err != nil {
		return err
	}

	if path := config.GetString("output"); path != "" {
		err = writeDocumentFile(path, doc, !buildCompact)
	} else {
		err = writeDocument(cmd.OutOrStdout(), doc, !buildCompact)
	}
	if err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	if path := config.GetString("metrics-textfile"); path != "" {
		reg := metrics.NewRegistry()
		reg.Record(stats)
		if err := reg.WriteTextfile(path); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	logger.Info("model written",
		"id", doc.ID,
		"nodes", stats.Nodes,
		"elements", stats.Elements,
		"restraints", stats.Restraints,
	)
	return nil
}

// buildProject loads a project file and builds its model with the
// configured limit override and logger.
func buildProject(path string) (*model.Document, *model.Stats, error) {
	p, err := loadProject(path)
	if err != nil {
		return nil, nil, err
	}
	return buildModel(p)
}

func loadProject(path string) (*piping.Project, error) {
	p, err := piping.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	logger.Debug("project loaded", "file", path, "pipes", len(p.Pipes))
	return p, nil
}

func buildModel(p *piping.Project) (*model.Document, *model.Stats, error) {
	return model.Build(p, model.Options{
		Logger:              logger,
		DiscretizationLimit: config.GetFloat64("limit"),
	})
}

// writeDocumentFile writes the document to path, creating its directory.
// The close error is returned when the write itself succeeded.
func writeDocumentFile(path string, doc *model.Document, indent bool) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeDocument(f, doc, indent)
}

func writeDocument(w io.Writer, doc *model.Document, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}
