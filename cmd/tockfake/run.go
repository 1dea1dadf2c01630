package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/northvolt/go-libtock/internal/scenario"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type runConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
}

func (c *runConfig) Exec(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return flag.ErrHelp
	}
	if c.rootConfig.verbose {
		fmt.Fprintln(c.err, "run", args[0])
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := scenario.Run(ctx, f, newLogger(c.rootConfig.verbose))
	if report != nil {
		printReport(c.out, report)
	}
	if err != nil {
		return err
	}
	return report.Err()
}

func printReport(w io.Writer, r *scenario.Report) {
	for _, s := range r.Steps {
		status := "ok  "
		if !s.Passed() {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s %3d %-28s", status, s.Index, s.Step)
		switch {
		case s.Err != nil:
			fmt.Fprintf(w, " %v", s.Err)
		case s.Value != "":
			fmt.Fprintf(w, " = %s", s.Value)
		}
		if !s.Passed() {
			fmt.Fprintf(w, " (%s)", s.Failure)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d steps, %d failed\n", len(r.Steps), r.Failed())
}

func newRunCmd(rootConfig *rootConfig, out io.Writer, err io.Writer) *ffcli.Command {
	cfg := runConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("tockfake run", flag.ExitOnError)
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "run",
		ShortUsage: "run <scenario.yaml>",
		ShortHelp:  "Runs a scripted scenario and reports each step.",
		LongHelp: `Runs a scripted scenario and reports each step.

A scenario lists the drivers to register and the steps to take:

  drivers: [humidity]
  steps:
    - {driver: humidity, action: set_value_sync, args: [5479]}
    - {driver: humidity, action: read_sync, expect: "5479"}

Exits with an error when a step does not match its expectation.`,
		FlagSet: fs,
		Exec:    cfg.Exec,
	}
}
