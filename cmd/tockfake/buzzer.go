package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/northvolt/go-libtock/apis/buzzer"
	"github.com/northvolt/go-libtock/fake"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type buzzerConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	freq       uint
	ms         uint
	ode        bool
	tempo      uint
}

func (c *buzzerConfig) Exec(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		fmt.Fprintln(c.err, "buzzer")
	}

	k, sys := newKernel(c.rootConfig)
	stub := fake.NewBuzzer()
	stub.SetImmediate(true)
	if err := k.AddDriver(stub); err != nil {
		return err
	}

	b := buzzer.New(sys)
	if err := b.DriverCheck(); err != nil {
		return err
	}
	if c.ode {
		if err := b.PlaySync(uint32(c.tempo), buzzer.OdeToJoy); err != nil {
			return err
		}
	} else if err := b.ToneSync(uint32(c.freq), uint32(c.ms)); err != nil {
		return err
	}

	f, d := stub.LastTone()
	fmt.Fprintf(c.out, "played %d tones, last %d Hz for %d ms\n", stub.Tones(), f, d)
	return nil
}

func newBuzzerCmd(rootConfig *rootConfig, out io.Writer, err io.Writer) *ffcli.Command {
	cfg := buzzerConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("tockfake buzzer", flag.ExitOnError)
	fs.UintVar(&cfg.freq, "freq", buzzer.A4, "tone frequency in Hz")
	fs.UintVar(&cfg.ms, "ms", 500, "tone duration in milliseconds")
	fs.BoolVar(&cfg.ode, "ode", false, "play Ode to Joy instead of a single tone")
	fs.UintVar(&cfg.tempo, "tempo", 114, "tempo in beats per minute for -ode")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "buzzer",
		ShortUsage: "buzzer [-freq hz -ms duration] [-ode]",
		ShortHelp:  "Plays tones through the buzzer driver.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
