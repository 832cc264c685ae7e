// Command hello prints a greeting and reports the spans of the call to a
// local jaeger agent.
//
//	hello [flags] <name>
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
