// Package platform is the system call layer shared by all driver clients.
//
// Applications reach kernel-resident drivers through four calls: command,
// subscribe, allow read-write and yield. Commands return immediately; results
// of long running operations arrive later as upcalls, delivered to subscribed
// listeners only while the application is inside a yield.
//
// # Scopes
//
// Listeners and buffers handed to the kernel are capability grants. They are
// made through a Scope, which revokes them when it exits:
//
//	err := platform.WithScope(sys, func(sc *platform.Scope) error {
//		if err := sc.AllowReadWrite(driver, 0, buf); err != nil {
//			return err
//		}
//		return sc.Subscribe(driver, 0, &cell)
//	})
//
// # Blocking calls
//
// Await turns a command answered by an upcall into a blocking call by yielding
// until the scope-local listener has fired.
package platform
