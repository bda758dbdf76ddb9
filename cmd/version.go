package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dexterlegrand/threejs-asets-sub009/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pipemodel",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
		fmt.Fprintln(cmd.OutOrStdout(), "Piping Stress Model Builder")
		fmt.Fprintln(cmd.OutOrStdout(), "Design defaults: ASME B31.3")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
