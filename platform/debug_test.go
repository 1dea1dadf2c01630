package platform

import (
	"fmt"
	"strings"
	"testing"
)

func TestHexDump(t *testing.T) {
	want := "h -> \n00000000  66 6f 6f 62 61 72                                 |foobar|\n\n <- h"
	got := fmt.Sprintf("h -> %s <- h", HexDump([]byte("foobar")))
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

type bufLogger struct {
	lines []string
}

func (b *bufLogger) Printf(format string, args ...interface{}) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

type stubSyscalls struct {
	prev []byte
}

func (s *stubSyscalls) Command(DriverNum, CommandID, uint32, uint32) CommandReturn {
	return Failure(ErrBusy)
}

func (s *stubSyscalls) Subscribe(DriverNum, SubscribeID, Upcall) (Upcall, error) {
	return nil, nil
}

func (s *stubSyscalls) Unsubscribe(DriverNum, SubscribeID) {}

func (s *stubSyscalls) AllowReadWrite(_ DriverNum, _ BufferID, buf []byte) ([]byte, error) {
	prev := s.prev
	s.prev = buf
	return prev, nil
}

func (s *stubSyscalls) YieldWait() {}

func (s *stubSyscalls) YieldNoWait() YieldNoWaitReturn {
	return NoUpcall
}

func TestTraced(t *testing.T) {
	var log bufLogger
	s := Traced(&stubSyscalls{}, &log)

	if err := s.Command(0x60001, 1, 2, 3).Err(); err != ErrBusy {
		t.Fatalf("got %v, want %v", err, ErrBusy)
	}
	if _, err := s.AllowReadWrite(0x40001, 0, []byte("foobar")); err != nil {
		t.Fatal(err)
	}
	prev, _ := s.AllowReadWrite(0x40001, 0, nil)
	if string(prev) != "foobar" {
		t.Errorf("got %q", prev)
	}
	s.YieldNoWait()

	want := []string{
		"0x60001 >>  command 1 (2, 3)",
		"0x60001 <<  command 1 failure libtock: busy",
		"0x40001 >>  allow_rw 0 len=6",
		"0x40001 <<  allow_rw 0 returned len=0 <nil>",
		"0x40001 >>  allow_rw 0 len=0",
		"0x40001 <<  allow_rw 0 returned len=6 <nil>",
		"\n00000000  66 6f 6f 62 61 72                                 |foobar|\n\n",
		"        <>  yield_no_wait no upcall",
	}
	if got := strings.Join(log.lines, "\n"); got != strings.Join(want, "\n") {
		t.Errorf("got\n%s\nwant\n%s", got, strings.Join(want, "\n"))
	}
}

func TestLoggerOrNull(t *testing.T) {
	if LoggerOrNull(nil) != NullLogger {
		t.Error("nil logger not replaced")
	}
	var l bufLogger
	if LoggerOrNull(&l) != &l {
		t.Error("logger replaced")
	}
}
