// expy patches an Exim build tree so its local_scan hook runs an
// embedded Python interpreter.
package main

import (
	"github.com/expy-mta/expy/src/expy/internal/cmd"
)

func main() {
	cmd.Execute()
}
