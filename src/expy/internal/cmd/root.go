package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/expy-mta/expy/src/common/cli"
	"github.com/expy-mta/expy/src/common/errors"
	"github.com/expy-mta/expy/src/common/logs"
	"github.com/expy-mta/expy/src/common/version"
	"github.com/expy-mta/expy/src/expy/internal/makefile"
	"github.com/expy-mta/expy/src/expy/internal/sysconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// VersionInfo holds version information - set at build time via ldflags
	VersionInfo = version.New()

	// Configuration file path
	cfgFile string

	// Output format (table, json or yaml)
	outputFormat string

	logger = logs.NewDefault()
)

// Linker variables - set via ldflags at build time
var (
	Version        = "dev"
	ReleaseVersion = "0.0.0"
	BuildDate      = "unknown"
	GitCommit      = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "expy",
	Short: "Embed Python into Exim's local_scan hook",
	Long: `expy wires an embedded Python interpreter into Exim's pluggable
local_scan content-inspection hook.

It discovers the compiler and linker flags of the host's Python build,
patches the recognized lines of Exim's Local/Makefile (CFLAGS,
EXTRALIBS, LOCAL_SCAN_SOURCE, LOCAL_SCAN_HAS_OPTIONS), and links the C
glue source into the build tree.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		logger = cli.InitLogger("expy")
		return nil
	},
}

// Execute runs the root command
func Execute() {
	VersionInfo.Version = Version
	VersionInfo.ReleaseVersion = ReleaseVersion
	VersionInfo.BuildDate = BuildDate
	VersionInfo.GitCommit = GitCommit

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errors.GetExitCode(err))
	}
}

func init() {
	cli.RegisterConfigFlag(rootCmd, &cfgFile, "~/.config/expy/expy.yaml")

	rootCmd.PersistentFlags().StringP("python", "p", "", "Python interpreter to probe (default: python3)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")

	cli.RegisterLogFlags(rootCmd)

	_ = viper.BindPFlag("python.interpreter", rootCmd.PersistentFlags().Lookup("python"))

	viper.SetDefault("python.interpreter", sysconfig.DefaultInterpreter)
	viper.SetDefault("makefile.path", filepath.Join(makefile.LocalDir, "Makefile"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(patchCmd)

	registerCompletions()
}

func registerCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("output", completionOutputFormat)
}

func initConfig() error {
	opts := cli.ConfigOptions{
		ConfigName: "expy",
		ConfigType: "yaml",
		EnvPrefix:  "EXPY",
		SearchPaths: []string{
			"/etc/expy",
			"~/.config/expy",
		},
	}
	opts.ConfigFile = cfgFile

	return cli.InitConfig(opts)
}

// getOutputFormat returns the current output format
func getOutputFormat() string {
	return outputFormat
}
