package main

import (
	"context"
	"flag"

	"github.com/peterbourgon/ff/v3/ffcli"
)

type rootConfig struct {
	verbose bool
}

func (c *rootConfig) registerFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "v", false, "log every syscall")
}

func (c *rootConfig) Exec(context.Context, []string) error {
	return flag.ErrHelp
}

func newRootCmd() (*ffcli.Command, *rootConfig) {
	var cfg rootConfig

	fs := flag.NewFlagSet("tockfake", flag.ExitOnError)
	cfg.registerFlags(fs)

	return addLongHelp(&ffcli.Command{
		Name:       "tockfake",
		ShortUsage: "tockfake [flags] <subcommand>",
		ShortHelp:  "Drive libtock driver clients against a fake kernel.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}), &cfg
}

var tockfakeLongHelp = `

GENERAL
Every subcommand starts a fresh fake kernel with only the drivers it needs.
With -v each syscall and upcall is logged to stderr, buffers as hexdump -C.

Driver numbers:

  adc            0x00005
  rng            0x40001
  humidity       0x60001
  sound pressure 0x60006
  buzzer         0x90000
  touch          0x90002
  text screen    0x90003`
