package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"io"

	"github.com/northvolt/go-libtock/apis/rng"
	"github.com/northvolt/go-libtock/fake"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type rngConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	bytes      int
	seed       string
}

func (c *rngConfig) Exec(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		fmt.Fprintln(c.err, "rng")
	}
	if c.bytes <= 0 {
		return fmt.Errorf("libtock: -n must be positive")
	}

	k, sys := newKernel(c.rootConfig)
	stub := fake.NewRng()
	if err := k.AddDriver(stub); err != nil {
		return err
	}

	seed := []byte(c.seed)
	if c.seed == "" {
		seed = make([]byte, 32)
		if _, err := rand.Read(seed); err != nil {
			return err
		}
	}
	if err := stub.Seed(seed); err != nil {
		return err
	}

	buf := make([]byte, c.bytes)
	n, err := rng.New(sys).GetRandomSync(buf, uint32(c.bytes))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, prettyHex(buf[:n]))

	if c.rootConfig.verbose {
		fmt.Fprintln(c.err, "wrote", n)
	}
	return nil
}

func newRngCmd(rootConfig *rootConfig, out io.Writer, err io.Writer) *ffcli.Command {
	cfg := rngConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("tockfake rng", flag.ExitOnError)
	fs.IntVar(&cfg.bytes, "n", 16, "number of random bytes")
	fs.StringVar(&cfg.seed, "seed", "", "seed for a reproducible stream, random when empty")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "rng",
		ShortUsage: "rng [-n bytes] [-seed seed]",
		ShortHelp:  "Reads random bytes through the rng driver.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
