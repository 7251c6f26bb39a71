package makefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/expy-mta/expy/src/common/errors"
)

func testValues() map[string]string {
	return map[string]string{
		KeyCFlags:              "-I/usr/include/py -fPIC",
		KeyExtraLibs:           "-lm -lpython3.12",
		KeyLocalScanSource:     "Local/expy_local_scan.c",
		KeyLocalScanHasOptions: "yes",
	}
}

func TestApply_AppendsToExistingCFlags(t *testing.T) {
	lines := Apply([]string{"CFLAGS=-O2"}, testValues())
	if lines[0] != "CFLAGS=-O2 -I/usr/include/py -fPIC" {
		t.Errorf("unexpected CFLAGS line: %q", lines[0])
	}
}

func TestApply_AppendTrimsTrailingWhitespace(t *testing.T) {
	lines := Apply([]string{"EXTRALIBS=-ldl \t"}, testValues())
	if lines[0] != "EXTRALIBS=-ldl -lm -lpython3.12" {
		t.Errorf("unexpected EXTRALIBS line: %q", lines[0])
	}
}

func TestApply_ReplacesLocalScanSource(t *testing.T) {
	lines := Apply([]string{"LOCAL_SCAN_SOURCE=src/local_scan.c"}, testValues())
	if lines[0] != "LOCAL_SCAN_SOURCE=Local/expy_local_scan.c" {
		t.Errorf("unexpected LOCAL_SCAN_SOURCE line: %q", lines[0])
	}
}

func TestApply_AdditiveKeysAreNotIdempotent(t *testing.T) {
	// Running the patch twice double-appends the flags. This is the
	// tool's known limitation, pinned here rather than fixed.
	once := Apply([]string{"CFLAGS=-O2"}, testValues())
	twice := Apply(once, testValues())
	want := "CFLAGS=-O2 -I/usr/include/py -fPIC -I/usr/include/py -fPIC"
	if twice[0] != want {
		t.Errorf("second run: expected %q, got %q", want, twice[0])
	}
}

func TestApply_ReplaceKeysAreIdempotent(t *testing.T) {
	once := Apply([]string{"LOCAL_SCAN_SOURCE=old.c", "LOCAL_SCAN_HAS_OPTIONS=no"}, testValues())
	twice := Apply(once, testValues())
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("line %d changed on second run: %q -> %q", i, once[i], twice[i])
		}
	}
	if twice[0] != "LOCAL_SCAN_SOURCE=Local/expy_local_scan.c" {
		t.Errorf("unexpected line: %q", twice[0])
	}
	if twice[1] != "LOCAL_SCAN_HAS_OPTIONS=yes" {
		t.Errorf("unexpected line: %q", twice[1])
	}
}

func TestApply_NoMatches_AppendsAllKeysInOrder(t *testing.T) {
	original := []string{"# Exim configuration", "BIN_DIRECTORY=/usr/exim/bin"}
	lines := Apply(original, testValues())

	if len(lines) != len(original)+4 {
		t.Fatalf("expected %d lines, got %d", len(original)+4, len(lines))
	}
	for i, want := range original {
		if lines[i] != want {
			t.Errorf("pre-existing line %d changed: %q", i, lines[i])
		}
	}
	wantTail := []string{
		"CFLAGS=-I/usr/include/py -fPIC",
		"EXTRALIBS=-lm -lpython3.12",
		"LOCAL_SCAN_SOURCE=Local/expy_local_scan.c",
		"LOCAL_SCAN_HAS_OPTIONS=yes",
	}
	for i, want := range wantTail {
		if lines[len(original)+i] != want {
			t.Errorf("appended line %d: expected %q, got %q", i, want, lines[len(original)+i])
		}
	}
}

func TestApply_EmptyValue_LeavesKeySatisfied(t *testing.T) {
	values := testValues()
	values[KeyCFlags] = ""

	lines := Apply([]string{"CFLAGS=-O2"}, values)
	if lines[0] != "CFLAGS=-O2" {
		t.Errorf("CFLAGS line modified despite empty value: %q", lines[0])
	}
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, "CFLAGS=") {
			t.Errorf("CFLAGS appended despite empty value: %q", line)
		}
	}
}

func TestApply_DuplicateKeys_OnlyFirstModified(t *testing.T) {
	lines := Apply([]string{"CFLAGS=-O2", "CFLAGS=-g"}, testValues())
	if lines[0] != "CFLAGS=-O2 -I/usr/include/py -fPIC" {
		t.Errorf("first CFLAGS line: %q", lines[0])
	}
	if lines[1] != "CFLAGS=-g" {
		t.Errorf("duplicate CFLAGS line should be untouched, got %q", lines[1])
	}
}

func TestApply_HasOptionsDefault(t *testing.T) {
	values := map[string]string{KeyCFlags: "", KeyExtraLibs: "", KeyLocalScanSource: ""}

	lines := Apply(nil, values)
	count := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "LOCAL_SCAN_HAS_OPTIONS=") {
			count++
			if line != "LOCAL_SCAN_HAS_OPTIONS=yes" {
				t.Errorf("unexpected default: %q", line)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one LOCAL_SCAN_HAS_OPTIONS line, got %d", count)
	}
	if len(lines) != 1 {
		t.Errorf("expected only the defaulted key, got %v", lines)
	}
}

func TestSplitLines(t *testing.T) {
	if got := SplitLines(""); len(got) != 0 {
		t.Errorf("empty content: expected no lines, got %v", got)
	}
	got := SplitLines("a\nb\n")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected lines: %v", got)
	}
	got = SplitLines("a\n\nb")
	if len(got) != 3 || got[1] != "" {
		t.Errorf("blank interior line lost: %v", got)
	}
}

func TestJoinLines(t *testing.T) {
	if got := JoinLines(nil); got != "" {
		t.Errorf("expected empty content, got %q", got)
	}
	if got := JoinLines([]string{"a", "b"}); got != "a\nb\n" {
		t.Errorf("unexpected content: %q", got)
	}
}

func TestPatch_InPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Makefile")
	if err := os.WriteFile(path, []byte("CFLAGS=-O2\nBIN_DIRECTORY=/usr/exim/bin\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Patch(path, path, testValues()); err != nil {
		t.Fatalf("Patch error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "CFLAGS=-O2 -I/usr/include/py -fPIC\n" +
		"BIN_DIRECTORY=/usr/exim/bin\n" +
		"EXTRALIBS=-lm -lpython3.12\n" +
		"LOCAL_SCAN_SOURCE=Local/expy_local_scan.c\n" +
		"LOCAL_SCAN_HAS_OPTIONS=yes\n"
	if string(data) != want {
		t.Errorf("patched content:\n%s\nwant:\n%s", data, want)
	}
}

func TestPatch_SeparateOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "Makefile")
	out := filepath.Join(dir, "Makefile.patched")
	if err := os.WriteFile(in, []byte("CFLAGS=-O2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Patch(in, out, testValues()); err != nil {
		t.Fatalf("Patch error: %v", err)
	}

	original, _ := os.ReadFile(in)
	if string(original) != "CFLAGS=-O2\n" {
		t.Errorf("input file modified: %q", original)
	}
	patched, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.HasPrefix(string(patched), "CFLAGS=-O2 -I/usr/include/py -fPIC\n") {
		t.Errorf("unexpected output: %q", patched)
	}
}

func TestPatch_MissingInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "Makefile")
	out := filepath.Join(dir, "Makefile.patched")

	err := Patch(in, out, testValues())
	if !errors.Is(err, errors.ErrMakefileNotFound) {
		t.Fatalf("expected ErrMakefileNotFound, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("output file must not be created when input is missing")
	}
}

func TestPatch_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "Makefile")
	if err := os.WriteFile(in, []byte("CFLAGS=-O2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "missing", "Makefile")
	err := Patch(in, out, testValues())
	if !errors.Is(err, errors.ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}
}

func TestValues(t *testing.T) {
	v := Values("-I/inc", "-lm")
	if v[KeyCFlags] != "-I/inc" || v[KeyExtraLibs] != "-lm" {
		t.Errorf("unexpected flag values: %v", v)
	}
	if v[KeyLocalScanSource] != "Local/expy_local_scan.c" {
		t.Errorf("unexpected source reference: %q", v[KeyLocalScanSource])
	}
	if v[KeyLocalScanHasOptions] != "yes" {
		t.Errorf("unexpected has-options value: %q", v[KeyLocalScanHasOptions])
	}
}
