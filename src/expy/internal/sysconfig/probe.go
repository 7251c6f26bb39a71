package sysconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/expy-mta/expy/src/common/errors"
)

// DefaultInterpreter is the interpreter probed when none is configured.
const DefaultInterpreter = "python3"

// probeProgram asks the interpreter to report the fixed variable set as
// a single JSON object on stdout. get_config_var returns None for
// unknown names; those become empty strings.
const probeProgram = `import json, sysconfig
names = ["INCLUDEPY", "CFLAGSFORSHARED", "LIBPL", "LIBRARY", "LIBM", "LIBS", "LDFLAGS", "LINKFORSHARED", "VERSION"]
out = {n: str(sysconfig.get_config_var(n) or "") for n in names}
out["purelib"] = sysconfig.get_paths()["purelib"]
print(json.dumps(out))
`

// Probe locates the given interpreter on PATH, runs it once, and
// decodes the reported build configuration. The interpreter argument
// may be a bare command name or a path; empty selects
// DefaultInterpreter.
func Probe(ctx context.Context, interpreter string) (*Variables, error) {
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}

	bin, err := exec.LookPath(interpreter)
	if err != nil {
		return nil, errors.ErrInterpreterNotFound.WithMessagef("Python interpreter %q not found in PATH", interpreter)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-c", probeProgram)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, errors.ErrProbeFailed.WithMessagef("%s exited with an error: %s", bin, msg).WithCause(err)
	}

	vars, err := decodeProbeOutput(stdout.Bytes())
	if err != nil {
		return nil, errors.ErrProbeFailed.WithMessagef("unexpected output from %s", bin).WithCause(err)
	}
	return vars, nil
}

// decodeProbeOutput parses the JSON object emitted by probeProgram.
func decodeProbeOutput(data []byte) (*Variables, error) {
	var m map[string]string
	if err := json.Unmarshal(bytes.TrimSpace(data), &m); err != nil {
		return nil, err
	}
	return FromMap(m), nil
}
