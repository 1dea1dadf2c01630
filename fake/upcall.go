package fake

import "github.com/northvolt/go-libtock/platform"

// slot identifies an upcall slot across all drivers.
type slot struct {
	driver platform.DriverNum
	id     platform.SubscribeID
}

type pendingUpcall struct {
	slot    slot
	payload platform.Payload
}

// upcallRegistry binds each slot to at most one listener.
type upcallRegistry struct {
	listeners map[slot]platform.Upcall
}

// register binds l to s and returns the listener it replaced.
func (r *upcallRegistry) register(s slot, l platform.Upcall) platform.Upcall {
	if r.listeners == nil {
		r.listeners = make(map[slot]platform.Upcall)
	}
	prev := r.listeners[s]
	r.listeners[s] = l
	return prev
}

// unregister clears s and returns the listener it held.
func (r *upcallRegistry) unregister(s slot) platform.Upcall {
	prev := r.listeners[s]
	delete(r.listeners, s)
	return prev
}

func (r *upcallRegistry) lookup(s slot) (platform.Upcall, bool) {
	l, ok := r.listeners[s]
	return l, ok
}

func (r *upcallRegistry) unregisterDriver(num platform.DriverNum) {
	for s := range r.listeners {
		if s.driver == num {
			delete(r.listeners, s)
		}
	}
}

// upcallQueue is the FIFO of upcalls waiting for a yield.
type upcallQueue struct {
	entries []pendingUpcall
}

func (q *upcallQueue) push(u pendingUpcall) {
	q.entries = append(q.entries, u)
}

func (q *upcallQueue) pop() (pendingUpcall, bool) {
	if len(q.entries) == 0 {
		return pendingUpcall{}, false
	}
	u := q.entries[0]
	q.entries[0] = pendingUpcall{}
	q.entries = q.entries[1:]
	return u, true
}

func (q *upcallQueue) len() int {
	return len(q.entries)
}

// purge drops every queued upcall matching fn.
func (q *upcallQueue) purge(fn func(slot) bool) {
	kept := q.entries[:0]
	for _, u := range q.entries {
		if !fn(u.slot) {
			kept = append(kept, u)
		}
	}
	for i := len(kept); i < len(q.entries); i++ {
		q.entries[i] = pendingUpcall{}
	}
	q.entries = kept
}
