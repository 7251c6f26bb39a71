package cmd

import (
	"fmt"

	"github.com/expy-mta/expy/src/expy/internal/output"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Shows the expy version, build date, and git commit.`,
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	switch getOutputFormat() {
	case output.FormatJSON:
		return output.PrintJSON(VersionInfo.Map())
	case output.FormatYAML:
		return output.PrintYAML(VersionInfo.Map())
	}

	fmt.Fprintln(cmd.OutOrStdout(), VersionInfo.Full())
	return nil
}
