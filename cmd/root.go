package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/version"
)

var (
	cfgFile string

	// config is bound to persistent flags, PIPEMODEL_* env vars and the
	// optional config file, in that order of precedence.
	config = viper.New()

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "pipemodel",
	Short: "Piping layout to structural analysis model converter",
	Long: `pipemodel - Piping Stress Model Builder

A CLI tool that converts a piping layout (pipe segments with fittings,
flanges, valves, supports and loads) into a beam-element analysis model
for a structural solver.

This tool:
  - Rewrites elbows, returns, reducers and tees into fitting-body elements
  - Discretizes every line into beam elements under a length limit
  - Numbers nodes and maps supports to node restraints
  - Distributes dead, live and wind loads to nodes and elements
  - Emits flange, valve, slug, seismic and thermal tables

Defaults follow ASME B31.3.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		l, err := newLogger(cmd.ErrOrStderr(), config.GetString("log-level"), config.GetString("log-format"))
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   pipemodel v%-45s║\n", version.Version)
		fmt.Println("  ║   Piping Stress Model Builder                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Converts a piping layout into a beam-element analysis model.")
		fmt.Println()
		fmt.Println("  Commands:")
		fmt.Println("    • build         write the analysis model document (JSON)")
		fmt.Println("    • inspect       summarize the model of a project")
		fmt.Println("    • plot          export plan, elevation or side views")
		fmt.Println("    • combinations  evaluate ASME B31.3 load combinations")
		fmt.Println()
		fmt.Println("  Use 'pipemodel --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().Float64("limit", 0, "Override the project discretization limit (m)")
}

// loadConfig binds the flags of cmd, the environment and the config file.
func loadConfig(cmd *cobra.Command) error {
	config.SetEnvPrefix("PIPEMODEL")
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()

	if err := config.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if cfgFile != "" {
		config.SetConfigFile(cfgFile)
		if err := config.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}
	return nil
}

// newLogger builds the slog logger selected by level and format.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q", format)
}
