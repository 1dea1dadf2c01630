// Package fake contains a fake kernel and fake drivers for testing driver
// clients without hardware.
//
// A Kernel implements platform.Syscalls. Fake drivers are added to it with
// AddDriver and then controlled from the test:
//
//	k := fake.NewKernel()
//	h := fake.NewHumidity()
//	_ = k.AddDriver(h)
//
//	h.SetValueSync(1000)
//	v, err := humidity.New(k).ReadSync()
//
// Most fake drivers support two ways of answering a request. Deferred: the
// test calls a stimulus method (SetValue, AddBytes, Finish) after the command
// has been issued, and the upcall is delivered at the next yield. Immediate:
// the test stores the answer up front (SetValueSync, AddBytesSync,
// SetImmediate) and the driver schedules the upcall from within the command
// itself, which lets a blocking call complete without the test running
// concurrently.
//
// The kernel never panics on a bad request; every failure is reported as a
// platform.ErrorCode.
package fake
