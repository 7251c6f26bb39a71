// Package makefile rewrites the recognized KEY=value lines of Exim's
// Local/Makefile so the build picks up the embedded interpreter. All
// other file content is preserved byte-for-byte, in order.
package makefile

import (
	"os"
	"strings"

	"github.com/expy-mta/expy/src/common/errors"
)

// Mode selects how a recognized key's existing line is edited.
type Mode int

const (
	// ModeAppend extends the first existing line in place,
	// space-separated. Appending the same value twice produces a
	// doubled flag string; callers run this once per build tree.
	ModeAppend Mode = iota

	// ModeReplace overwrites the first existing line entirely.
	ModeReplace
)

// Rule describes one recognized Makefile key.
type Rule struct {
	// Key is the variable name, matched as a "KEY=" line prefix
	Key string

	// Mode selects append or replace editing
	Mode Mode

	// Default is used when no value is supplied for the key. A key
	// with neither a value nor a default is left alone everywhere.
	Default string
}

// Rules lists the recognized keys in the order missing lines are
// appended. The order is part of the output contract.
var Rules = []Rule{
	{Key: KeyCFlags, Mode: ModeAppend},
	{Key: KeyExtraLibs, Mode: ModeAppend},
	{Key: KeyLocalScanSource, Mode: ModeReplace},
	{Key: KeyLocalScanHasOptions, Mode: ModeReplace, Default: "yes"},
}

// Recognized keys.
const (
	KeyCFlags              = "CFLAGS"
	KeyExtraLibs           = "EXTRALIBS"
	KeyLocalScanSource     = "LOCAL_SCAN_SOURCE"
	KeyLocalScanHasOptions = "LOCAL_SCAN_HAS_OPTIONS"
)

// effectiveValue resolves the value to enforce for a rule. Empty means
// the key is already satisfied and must not be touched.
func (r Rule) effectiveValue(values map[string]string) string {
	if v := values[r.Key]; v != "" {
		return v
	}
	return r.Default
}

// Apply enforces the rule table on an ordered line sequence and returns
// the edited sequence. Lines carry no terminators. For each rule the
// first line starting with "KEY=" is edited (append mode trims trailing
// whitespace and adds a space-separated value, replace mode rewrites
// the whole line); later lines with the same prefix are left untouched.
// Keys never seen are appended at the end in rule-table order.
func Apply(lines []string, values map[string]string) []string {
	out := make([]string, len(lines))
	copy(out, lines)

	applied := make(map[string]bool, len(Rules))
	for _, rule := range Rules {
		value := rule.effectiveValue(values)
		if value == "" {
			applied[rule.Key] = true
			continue
		}
		prefix := rule.Key + "="
		for i, line := range out {
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			switch rule.Mode {
			case ModeAppend:
				out[i] = strings.TrimRight(line, " \t") + " " + value
			case ModeReplace:
				out[i] = prefix + value
			}
			applied[rule.Key] = true
			break
		}
	}

	for _, rule := range Rules {
		if applied[rule.Key] {
			continue
		}
		out = append(out, rule.Key+"="+rule.effectiveValue(values))
	}

	return out
}

// SplitLines breaks file content into terminator-free lines. A trailing
// newline does not produce a final empty line; empty content produces
// an empty sequence.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// JoinLines renders a line sequence back to file content with a
// newline after every line.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Render reads the Makefile at inputPath, applies the rule table, and
// returns the patched content without writing anything.
func Render(inputPath string, values map[string]string) (string, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.ErrMakefileNotFound.WithMessagef("Makefile %s not found", inputPath)
		}
		return "", errors.ErrMakefileNotFound.WithMessagef("cannot read %s", inputPath).WithCause(err)
	}
	return JoinLines(Apply(SplitLines(string(data)), values)), nil
}

// Patch reads the Makefile at inputPath, applies the rule table, and
// writes the full patched content to outputPath. The two paths may be
// equal; the write is a single whole-file rewrite, not an atomic
// replace.
func Patch(inputPath, outputPath string, values map[string]string) error {
	content, err := Render(inputPath, values)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return errors.ErrWriteFailed.WithMessagef("cannot write %s", outputPath).WithCause(err)
	}
	return nil
}

// Values builds the rule-table value set from the computed flag
// strings. The local_scan source is always referenced relative to the
// build tree.
func Values(cflags, extraLibs string) map[string]string {
	return map[string]string{
		KeyCFlags:              cflags,
		KeyExtraLibs:           extraLibs,
		KeyLocalScanSource:     "Local/" + SourceFile,
		KeyLocalScanHasOptions: "yes",
	}
}
