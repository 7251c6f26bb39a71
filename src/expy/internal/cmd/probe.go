package cmd

import (
	"context"

	"github.com/expy-mta/expy/src/expy/internal/output"
	"github.com/expy-mta/expy/src/expy/internal/sysconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ProbeReport is the structured form of a discovery run
type ProbeReport struct {
	Interpreter     string            `json:"interpreter" yaml:"interpreter"`
	Variables       map[string]string `json:"variables" yaml:"variables"`
	CFlags          string            `json:"cflags" yaml:"cflags"`
	ExtraLibs       string            `json:"extralibs" yaml:"extralibs"`
	LocalScanModule string            `json:"local_scan_module" yaml:"local_scan_module"`
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Show the discovered Python build configuration",
	Long: `Probe runs the Python interpreter once and prints the build
variables that patch would apply, together with the derived CFLAGS and
EXTRALIBS strings and the suggested install path for the Python-side
local_scan module.`,
	RunE: runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	interpreter := viper.GetString("python.interpreter")

	vars, err := sysconfig.Probe(context.Background(), interpreter)
	if err != nil {
		return err
	}

	report := ProbeReport{
		Interpreter:     interpreter,
		Variables:       vars.Map(),
		CFlags:          vars.CFlags(),
		ExtraLibs:       vars.ExtraLibs(),
		LocalScanModule: vars.LocalScanModulePath(),
	}

	return output.PrintFormatted(getOutputFormat(), report, func() error {
		rows := make([][]string, 0, len(sysconfig.Names)+3)
		m := vars.Map()
		for _, name := range sysconfig.Names {
			rows = append(rows, []string{name, m[name]})
		}
		rows = append(rows,
			[]string{"-> CFLAGS", report.CFlags},
			[]string{"-> EXTRALIBS", report.ExtraLibs},
			[]string{"-> local_scan module", report.LocalScanModule},
		)

		output.PrintTable([]string{"VARIABLE", "VALUE"}, rows)
		return nil
	})
}
