package makefile

import (
	"io/fs"
	"os"
	"path/filepath"

	stderrors "errors"

	"github.com/expy-mta/expy/src/common/errors"
	"github.com/expy-mta/expy/src/common/paths"
)

// SourceFile is the C glue source that implements local_scan on top of
// the embedded interpreter.
const SourceFile = "expy_local_scan.c"

// LocalDir is the Exim build subdirectory holding site configuration.
const LocalDir = "Local"

// MakefilePath returns the default Makefile location under an Exim
// build directory.
func MakefilePath(buildDir string) string {
	return filepath.Join(buildDir, LocalDir, "Makefile")
}

// LinkSource symlinks the glue source from sourceDir into the build
// tree's Local directory and returns the link path. An occupied target
// is an error; nothing is overwritten or cleaned up.
func LinkSource(sourceDir, buildDir string) (string, error) {
	src := filepath.Join(sourceDir, SourceFile)
	if !paths.IsFile(src) {
		return "", errors.ErrLinkSourceMissing.WithMessagef("%s not found in %s", SourceFile, sourceDir)
	}

	dst := filepath.Join(buildDir, LocalDir, SourceFile)
	if err := os.Symlink(src, dst); err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return "", errors.ErrLinkExists.WithMessagef("%s already exists", dst)
		}
		return "", errors.Wrap(err, errors.DomainLink, "link_failed", errors.ExitLink, "failed to create symlink")
	}
	return dst, nil
}
