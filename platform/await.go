package platform

// Await builds a blocking call out of an asynchronous driver operation.
//
// It subscribes a one-shot listener to the upcall slot, then runs start to
// trigger the operation. start may allow buffers through the scope and must
// issue the triggering command. If start fails, the subscription is revoked
// and the error is returned without yielding.
//
// Otherwise Await yields until the listener has been called. Any upcall in the
// system may wake the yield, so the listener is re-checked after every wake.
// There is no timeout: if the driver never answers, Await never returns.
func Await(s Syscalls, driver DriverNum, id SubscribeID, start func(*Scope) error) (Payload, error) {
	var cell Cell
	err := WithScope(s, func(sc *Scope) error {
		if err := sc.Subscribe(driver, id, &cell); err != nil {
			return err
		}
		if err := start(sc); err != nil {
			return err
		}
		for !cell.IsSet() {
			s.YieldWait()
		}
		return nil
	})
	if err != nil {
		return Payload{}, err
	}
	p, _ := cell.Get()
	return p, nil
}

// AwaitCommand issues cmd and waits for the upcall on the slot it answers on.
func AwaitCommand(s Syscalls, driver DriverNum, id SubscribeID, cmd CommandID, arg0, arg1 uint32) (Payload, error) {
	return Await(s, driver, id, func(*Scope) error {
		return s.Command(driver, cmd, arg0, arg1).Err()
	})
}
