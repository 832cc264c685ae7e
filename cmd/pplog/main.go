// Command pplog pretty prints the JSON log lines written by hello.
//
//	hello Bozo 2>&1 | pplog
//	pplog hello.log
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
