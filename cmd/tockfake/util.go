package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/northvolt/go-libtock/fake"
	"github.com/northvolt/go-libtock/platform"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/sirupsen/logrus"
)

// newKernel returns an empty fake kernel and the syscall interface clients
// should use. The interface is traced when verbose.
func newKernel(c *rootConfig) (*fake.Kernel, platform.Syscalls) {
	log := newLogger(c.verbose)
	k := fake.NewKernel(fake.KernelConfig{Debug: log})
	if log == nil {
		return k, k
	}
	return k, platform.Traced(k, log)
}

func newLogger(verbose bool) platform.Logger {
	if !verbose {
		return nil
	}
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	return l
}

func getI2CAddress(addrStr string) (uint16, error) {
	if addrStr == "" {
		return fake.Si7021DefaultAddress, nil
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(addrStr, "0x"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("libtock: invalid i2c address %q: %w", addrStr, err)
	}
	return uint16(addr), nil
}

func prettyHex(data []byte) string {
	return prettyHexIndent(data, "    ", "")
}

func prettyHexIndent(data []byte, prefix string, space string) string {
	var buf strings.Builder

	// prefix and space every 16 byte, and 2 hex, and one space/newline
	cols := 16
	size := (len(data)/cols+1)*(len(prefix)+len(space)+1) + len(data)*3
	buf.Grow(size)

	for i, b := range data {
		if i > 0 {
			switch i % cols {
			case 0:
				buf.WriteByte('\n')
			case cols / 2:
				buf.WriteByte(' ')
				buf.WriteString(space)
			default:
				buf.WriteByte(' ')
			}
		}
		if i%cols == 0 {
			buf.WriteString(prefix)
		}
		fmt.Fprintf(&buf, "%02X", b)
	}

	return buf.String()
}

func addLongHelp(cmd *ffcli.Command) *ffcli.Command {
	if cmd.LongHelp == "" {
		cmd.LongHelp = cmd.ShortHelp
	}

	cmd.LongHelp += tockfakeLongHelp

	return cmd
}
