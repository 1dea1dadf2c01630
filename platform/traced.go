package platform

// Traced returns a Syscalls that logs every call made through it to l before
// passing it on to s.
func Traced(s Syscalls, l Logger) Syscalls {
	return &tracedSyscalls{l: LoggerOrNull(l), next: s}
}

type tracedSyscalls struct {
	l    Logger
	next Syscalls
}

func (t *tracedSyscalls) Command(driver DriverNum, cmd CommandID, arg0, arg1 uint32) CommandReturn {
	t.l.Printf("%#x >>  command %d (%d, %d)", uint32(driver), cmd, arg0, arg1)
	r := t.next.Command(driver, cmd, arg0, arg1)
	t.l.Printf("%#x <<  command %d %s %+v", uint32(driver), cmd, r.Variant, r.Err())
	return r
}

func (t *tracedSyscalls) Subscribe(driver DriverNum, id SubscribeID, l Upcall) (Upcall, error) {
	t.l.Printf("%#x >>  subscribe %d", uint32(driver), id)
	prev, err := t.next.Subscribe(driver, id, l)
	t.l.Printf("%#x <<  subscribe %d replaced=%t %+v", uint32(driver), id, prev != nil, err)
	return prev, err
}

func (t *tracedSyscalls) Unsubscribe(driver DriverNum, id SubscribeID) {
	t.l.Printf("%#x >>  unsubscribe %d", uint32(driver), id)
	t.next.Unsubscribe(driver, id)
}

func (t *tracedSyscalls) AllowReadWrite(driver DriverNum, id BufferID, buf []byte) ([]byte, error) {
	t.l.Printf("%#x >>  allow_rw %d len=%d", uint32(driver), id, len(buf))
	prev, err := t.next.AllowReadWrite(driver, id, buf)
	t.l.Printf("%#x <<  allow_rw %d returned len=%d %+v", uint32(driver), id, len(prev), err)
	if len(prev) > 0 {
		t.l.Printf("%s", HexDump(prev))
	}
	return prev, err
}

func (t *tracedSyscalls) YieldWait() {
	t.l.Printf("        >>  yield_wait")
	t.next.YieldWait()
	t.l.Printf("        <<  yield_wait")
}

func (t *tracedSyscalls) YieldNoWait() YieldNoWaitReturn {
	r := t.next.YieldNoWait()
	t.l.Printf("        <>  yield_no_wait %s", r)
	return r
}
