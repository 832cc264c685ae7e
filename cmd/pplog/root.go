package main

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	p := &printer{}
	cmd := &cobra.Command{
		Use:   "pplog [flags] [LOGFILE]",
		Short: "Pretty print JSON log lines",
		Long: `pplog reads JSON log lines from LOGFILE, or from stdin when no file is
given, and prints them as aligned, colored text. Lines that are not JSON
objects are printed unchanged.

jq is useful to filter first, e.g. only errors:
	cat hello.log | jq -c 'select(.level == "ERROR")' | pplog`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = bufio.NewReader(f)
			}
			p.out = stdout
			return p.processLines(in)
		},
	}
	cmd.Flags().BoolVar(&p.noColor, "no-color", false, "do not colorize levels")
	cmd.Flags().BoolVar(&p.showHost, "show-host", false, "keep the hostname and service fields")
	return cmd
}
