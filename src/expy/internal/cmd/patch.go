package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/expy-mta/expy/src/common/errors"
	"github.com/expy-mta/expy/src/common/paths"
	"github.com/expy-mta/expy/src/expy/internal/makefile"
	"github.com/expy-mta/expy/src/expy/internal/sysconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	patchYes       bool
	patchDryRun    bool
	patchNoLink    bool
	patchSourceDir string
)

var patchCmd = &cobra.Command{
	Use:   "patch (<build_dir> | <original_makefile> <new_makefile>)",
	Short: "Patch an Exim Makefile to embed the Python interpreter",
	Long: `Patch rewrites the recognized lines of an Exim Makefile with the
compiler and linker flags of the host's Python build.

With one argument the Makefile is found at <build_dir>/Local/Makefile,
patched in place, and the local_scan glue source is symlinked into
<build_dir>/Local/. With two arguments the original Makefile is read
and the patched content written to the new path; no symlink is made.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPatch,
}

func init() {
	patchCmd.Flags().BoolVarP(&patchYes, "yes", "y", false, "Overwrite the Makefile without asking")
	patchCmd.Flags().BoolVar(&patchDryRun, "dry-run", false, "Print the patched Makefile to stdout without writing")
	patchCmd.Flags().BoolVar(&patchNoLink, "no-link", false, "Skip linking the local_scan glue source")
	patchCmd.Flags().StringVar(&patchSourceDir, "source-dir", "", "Directory holding the glue source (default: the expy binary's directory)")
}

func runPatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	vars, err := sysconfig.Probe(ctx, viper.GetString("python.interpreter"))
	if err != nil {
		return err
	}
	values := makefile.Values(vars.CFlags(), vars.ExtraLibs())

	logger.Debug("discovered Python build configuration",
		"version", vars.Version,
		"cflags", values[makefile.KeyCFlags],
		"extralibs", values[makefile.KeyExtraLibs])

	buildDirMode := len(args) == 1
	var inPath, outPath string
	if buildDirMode {
		rel := viper.GetString("makefile.path")
		inPath = filepath.Join(args[0], rel)
		outPath = inPath
	} else {
		inPath = args[0]
		outPath = args[1]
	}

	if patchDryRun {
		content, err := makefile.Render(inPath, values)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	if outPath == inPath && paths.IsFile(outPath) && !patchYes && !confirmOverwrite(outPath) {
		return errors.ErrPatchAborted.WithMessagef("left %s untouched", outPath)
	}

	if err := makefile.Patch(inPath, outPath, values); err != nil {
		return err
	}
	logger.Info("patched Makefile", "path", outPath)

	if buildDirMode && !patchNoLink {
		srcDir := patchSourceDir
		if srcDir == "" {
			srcDir, err = paths.ExecutableDir()
			if err != nil {
				return errors.ErrInternal.WithMessage("cannot locate the expy binary").WithCause(err)
			}
		}
		link, err := makefile.LinkSource(srcDir, args[0])
		if err != nil {
			return err
		}
		logger.Info("linked local_scan source", "link", link)
	}

	if p := vars.LocalScanModulePath(); p != "" {
		logger.Info("suggested path for your local_scan module", "path", p)
	}

	return nil
}

// confirmOverwrite asks before an in-place rewrite when running on a
// terminal. Non-interactive invocations (build scripts, pipes) proceed
// without asking.
func confirmOverwrite(path string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}
	fmt.Fprintf(os.Stderr, "Patch %s in place? [y/N] ", path)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
