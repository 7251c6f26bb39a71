package sysconfig

import (
	"path/filepath"
	"testing"
)

func fullVars() *Variables {
	return FromMap(map[string]string{
		VarIncludePy:       "/usr/include/python3.12",
		VarCFlagsForShared: "-fPIC",
		VarLibPL:           "/usr/lib/python3.12/config",
		VarLibrary:         "libpython3.12.a",
		VarLibM:            "-lm",
		VarLibs:            "-ldl -lpthread",
		VarLDFlags:         "-Wl,-O1",
		VarLinkForShared:   "-Xlinker -export-dynamic",
		VarVersion:         "3.12",
		VarPureLib:         "/usr/lib/python3.12/site-packages",
	})
}

func TestFromMap_UnknownAndMissingNames(t *testing.T) {
	v := FromMap(map[string]string{
		VarIncludePy: "/inc",
		"BOGUS":      "ignored",
	})
	if v.IncludePy != "/inc" {
		t.Errorf("IncludePy = %q", v.IncludePy)
	}
	if v.Library != "" || v.Version != "" {
		t.Errorf("missing names should stay empty: %+v", v)
	}
}

func TestMap_UsesCanonicalNames(t *testing.T) {
	m := fullVars().Map()
	if len(m) != len(Names) {
		t.Fatalf("expected %d entries, got %d", len(Names), len(m))
	}
	for _, name := range Names {
		if _, ok := m[name]; !ok {
			t.Errorf("missing canonical name %q", name)
		}
	}
	if m[VarVersion] != "3.12" {
		t.Errorf("VERSION = %q", m[VarVersion])
	}
}

func TestCFlags(t *testing.T) {
	v := FromMap(map[string]string{
		VarIncludePy:       "/usr/include/py",
		VarCFlagsForShared: "-fPIC",
	})
	if got := v.CFlags(); got != "-I/usr/include/py -fPIC" {
		t.Errorf("CFlags() = %q", got)
	}
}

func TestCFlags_IncludeOnly(t *testing.T) {
	v := FromMap(map[string]string{VarIncludePy: "/usr/include/py"})
	if got := v.CFlags(); got != "-I/usr/include/py" {
		t.Errorf("CFlags() = %q", got)
	}
}

func TestCFlags_Empty(t *testing.T) {
	v := FromMap(nil)
	if got := v.CFlags(); got != "" {
		t.Errorf("CFlags() = %q, expected empty", got)
	}
}

func TestLibraryPath(t *testing.T) {
	v := fullVars()
	want := filepath.Join("/usr/lib/python3.12/config", "libpython3.12.a")
	if got := v.LibraryPath(); got != want {
		t.Errorf("LibraryPath() = %q", got)
	}
}

func TestLibraryPath_NoLibrary(t *testing.T) {
	v := FromMap(map[string]string{VarLibPL: "/usr/lib/config"})
	if got := v.LibraryPath(); got != "" {
		t.Errorf("LibraryPath() = %q, expected empty", got)
	}
}

func TestExtraLibs(t *testing.T) {
	v := fullVars()
	want := "-lm -ldl -lpthread -Wl,-O1 " +
		filepath.Join("/usr/lib/python3.12/config", "libpython3.12.a") +
		" -Xlinker -export-dynamic"
	if got := v.ExtraLibs(); got != want {
		t.Errorf("ExtraLibs() = %q, want %q", got, want)
	}
}

func TestExtraLibs_SkipsEmptyMembers(t *testing.T) {
	v := FromMap(map[string]string{
		VarLibM: "-lm",
		VarLibs: "-ldl",
	})
	if got := v.ExtraLibs(); got != "-lm -ldl" {
		t.Errorf("ExtraLibs() = %q", got)
	}
}

func TestLocalScanModulePath(t *testing.T) {
	v := fullVars()
	want := filepath.Join("/usr/lib/python3.12/site-packages", "exim_local_scan.py")
	if got := v.LocalScanModulePath(); got != want {
		t.Errorf("LocalScanModulePath() = %q", got)
	}

	if got := FromMap(nil).LocalScanModulePath(); got != "" {
		t.Errorf("expected empty suggestion without purelib, got %q", got)
	}
}

func TestDecodeProbeOutput(t *testing.T) {
	data := []byte(`{"INCLUDEPY": "/inc", "VERSION": "3.12", "purelib": "/site"}` + "\n")
	v, err := decodeProbeOutput(data)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if v.IncludePy != "/inc" || v.Version != "3.12" || v.PureLib != "/site" {
		t.Errorf("unexpected variables: %+v", v)
	}
}

func TestDecodeProbeOutput_Invalid(t *testing.T) {
	if _, err := decodeProbeOutput([]byte("Traceback (most recent call last):")); err == nil {
		t.Fatal("expected error for non-JSON output")
	}
}
