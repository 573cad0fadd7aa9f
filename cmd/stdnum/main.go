// stdnum checks ISBN, ISSN and LCCN identifiers given on the command line.
//
// Exit status is 0 when every identifier is valid, 1 when any is invalid
// and 2 on usage errors.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/open-stdnum-gateway/pkg/identifier"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var kindFlag, output string

	flagSet := pflag.NewFlagSet("stdnum", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&kindFlag, "kind", "k", "auto", "identifier kind: auto, isbn, issn or lccn")
	flagSet.StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: stdnum [flags] IDENTIFIER...\n\nFlags:\n%s", flagSet.FlagUsages())
	}

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return exitValid
		}
		return exitUsage
	}

	kind, err := identifier.ParseKind(kindFlag)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return exitUsage
	}

	results := make([]identifier.Result, 0, flagSet.NArg())
	status := exitValid
	for _, raw := range flagSet.Args() {
		res := identifier.Inspect(kind, raw)
		if !res.Valid {
			status = exitInvalid
		}
		results = append(results, res)
	}

	if err := writeResults(stdout, output, results); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	return status
}

func writeResults(w io.Writer, format string, results []identifier.Result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, r := range results {
			kind := string(r.Kind)
			if kind == "" {
				kind = "?"
			}
			if r.Valid {
				fmt.Fprintf(tw, "%s\t%s\tvalid\t%s\n", kind, r.Input, r.Normalized)
			} else {
				fmt.Fprintf(tw, "%s\t%s\tinvalid\t%s\n", kind, r.Input, r.Error)
			}
		}
		return tw.Flush()
	}
	return fmt.Errorf("unknown output format %q", format)
}
