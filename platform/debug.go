package platform

import (
	"encoding/hex"
	"strings"
)

// Logger is the interface used for debug messages.
//
// Some messages will be multiple lines.
type Logger interface {
	Printf(format string, args ...interface{})
}

type nullLoggerImpl struct{}

func (nullLoggerImpl) Printf(format string, args ...interface{}) {}

// NullLogger is a logger that does nothing.
var NullLogger Logger = nullLoggerImpl{}

// LoggerOrNull always returns a logger.
func LoggerOrNull(l Logger) Logger {
	if l == nil {
		return NullLogger
	}
	return l
}

// HexDump lazily formats binary data, matching `hexdump -C`.
//
// HexDump implements fmt.Stringer interface, allowing it to lazily dump binary
// data as hex when needed. The format of the dump matches the output of
// `hexdump -C` on the command line.
type HexDump []byte

func (h HexDump) String() string {
	var buf strings.Builder
	buf.WriteByte('\n')
	d := hex.Dumper(&buf)
	_, _ = d.Write([]byte(h))
	_ = d.Close()
	buf.WriteByte('\n')
	return buf.String()
}
