// Package sysconfig discovers the Python build-configuration variables
// needed to compile and link an embedded interpreter into Exim's
// local_scan hook. The variable set is fixed; values are opaque strings
// reported by the interpreter itself.
package sysconfig

import (
	"path/filepath"
	"strings"
)

// Canonical variable names, as reported by Python's sysconfig module.
const (
	VarIncludePy       = "INCLUDEPY"
	VarCFlagsForShared = "CFLAGSFORSHARED"
	VarLibPL           = "LIBPL"
	VarLibrary         = "LIBRARY"
	VarLibM            = "LIBM"
	VarLibs            = "LIBS"
	VarLDFlags         = "LDFLAGS"
	VarLinkForShared   = "LINKFORSHARED"
	VarVersion         = "VERSION"
	VarPureLib         = "purelib"
)

// Names lists every variable the prober requests, in report order.
var Names = []string{
	VarIncludePy,
	VarCFlagsForShared,
	VarLibPL,
	VarLibrary,
	VarLibM,
	VarLibs,
	VarLDFlags,
	VarLinkForShared,
	VarVersion,
	VarPureLib,
}

// Variables is an immutable snapshot of the interpreter's build
// configuration. It is always passed explicitly, never read from
// process-global state, so callers can substitute fixed values.
type Variables struct {
	// IncludePy is the C header directory for the interpreter
	IncludePy string

	// CFlagsForShared are the compiler flags for shared-object builds
	CFlagsForShared string

	// LibPL is the directory holding the static interpreter library
	LibPL string

	// Library is the interpreter library file name
	Library string

	// LibM are the math library link flags
	LibM string

	// Libs are the platform runtime library link flags
	Libs string

	// LDFlags are the interpreter's own linker flags
	LDFlags string

	// LinkForShared are the link flags required when embedding
	LinkForShared string

	// Version is the interpreter version string (e.g., "3.12")
	Version string

	// PureLib is the site-packages directory for pure-Python modules
	PureLib string
}

// FromMap builds Variables from a name-to-value mapping using the
// canonical sysconfig names. Unknown names are ignored; missing names
// stay empty.
func FromMap(m map[string]string) *Variables {
	return &Variables{
		IncludePy:       m[VarIncludePy],
		CFlagsForShared: m[VarCFlagsForShared],
		LibPL:           m[VarLibPL],
		Library:         m[VarLibrary],
		LibM:            m[VarLibM],
		Libs:            m[VarLibs],
		LDFlags:         m[VarLDFlags],
		LinkForShared:   m[VarLinkForShared],
		Version:         m[VarVersion],
		PureLib:         m[VarPureLib],
	}
}

// Map returns the variables keyed by their canonical names.
func (v *Variables) Map() map[string]string {
	return map[string]string{
		VarIncludePy:       v.IncludePy,
		VarCFlagsForShared: v.CFlagsForShared,
		VarLibPL:           v.LibPL,
		VarLibrary:         v.Library,
		VarLibM:            v.LibM,
		VarLibs:            v.Libs,
		VarLDFlags:         v.LDFlags,
		VarLinkForShared:   v.LinkForShared,
		VarVersion:         v.Version,
		VarPureLib:         v.PureLib,
	}
}

// CFlags returns the compiler flags to add to the Makefile's CFLAGS
// line: the interpreter include directory plus the shared-build flags.
func (v *Variables) CFlags() string {
	var parts []string
	if v.IncludePy != "" {
		parts = append(parts, "-I"+v.IncludePy)
	}
	if v.CFlagsForShared != "" {
		parts = append(parts, v.CFlagsForShared)
	}
	return strings.Join(parts, " ")
}

// LibraryPath returns the full path to the interpreter library file,
// or empty when the library name is unknown.
func (v *Variables) LibraryPath() string {
	if v.Library == "" {
		return ""
	}
	return filepath.Join(v.LibPL, v.Library)
}

// ExtraLibs returns the link flags to add to the Makefile's EXTRALIBS
// line: math library, runtime libraries, linker flags, the interpreter
// library itself, and the embedding link flags, space-joined with empty
// members skipped.
func (v *Variables) ExtraLibs() string {
	var parts []string
	for _, p := range []string{v.LibM, v.Libs, v.LDFlags, v.LibraryPath(), v.LinkForShared} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// LocalScanModulePath returns the suggested install path for the
// Python-side local_scan module.
func (v *Variables) LocalScanModulePath() string {
	if v.PureLib == "" {
		return ""
	}
	return filepath.Join(v.PureLib, "exim_local_scan.py")
}
