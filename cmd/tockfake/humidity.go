package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/northvolt/go-libtock/apis/humidity"
	"github.com/northvolt/go-libtock/fake"
	"github.com/peterbourgon/ff/v3/ffcli"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

type humidityConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	value      int
	bus        string
	addr       string
}

func (c *humidityConfig) Exec(ctx context.Context, _ []string) error {
	if c.rootConfig.verbose {
		fmt.Fprintln(c.err, "humidity")
	}

	k, sys := newKernel(c.rootConfig)
	stub := fake.NewHumidity()
	if err := k.AddDriver(stub); err != nil {
		return err
	}

	if c.bus != "" {
		closer, err := c.attachSi7021(stub)
		if err != nil {
			return err
		}
		defer closer.Close()
	} else {
		stub.SetValueSync(int32(c.value))
	}

	v, err := humidity.New(sys).ReadSync()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d.%02d %%RH\n", v/100, v%100)
	return nil
}

// attachSi7021 makes stub sample a Si7021 on the configured bus.
func (c *humidityConfig) attachSi7021(stub *fake.Sensor) (io.Closer, error) {
	addr, err := getI2CAddress(c.addr)
	if err != nil {
		return nil, err
	}
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	bus, err := i2creg.Open(c.bus)
	if err != nil {
		return nil, fmt.Errorf("libtock: failed to connect to bus: %w", err)
	}
	stub.SampleFrom(fake.NewSi7021(bus, addr))
	return bus, nil
}

func newHumidityCmd(rootConfig *rootConfig, out io.Writer, err io.Writer) *ffcli.Command {
	cfg := humidityConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("tockfake humidity", flag.ExitOnError)
	fs.IntVar(&cfg.value, "value", 5000, "reading in hundredths of a percent when no bus is given")
	fs.StringVar(&cfg.bus, "bus", "", "i2c bus of a Si7021 sensor to sample instead")
	fs.StringVar(&cfg.addr, "addr", "", "i2c address of the sensor in hex (default 0x40)")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "humidity",
		ShortUsage: "humidity [-value n] [-bus name -addr hex]",
		ShortHelp:  "Reads the humidity driver once.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
