package platform

import (
	"errors"

	"github.com/hashicorp/go-multierror"
)

var errScopeClosed = errors.New("libtock: scope already exited")

type grantKind int

const (
	grantSubscribe grantKind = iota
	grantAllowRW
)

// grant records a single slot reserved by a scope and the state it replaced.
type grant struct {
	kind   grantKind
	driver DriverNum
	sub    SubscribeID
	buf    BufferID

	// bound is set once the slot has actually been registered with the
	// kernel. Only bound grants are revoked.
	bound        bool
	prevListener Upcall
	prevBuffer   []byte
}

// Scope tracks capability grants made during a single operation.
//
// Every listener subscribed and every buffer allowed through a Scope is
// revoked when the scope exits, restoring the listener or buffer that held the
// slot before. A listener or buffer granted to the kernel is owned by the
// driver until it is revoked; callers must not touch a granted buffer until
// the scope has exited or the buffer has been re-allowed away.
//
// A Scope is only valid inside the body passed to WithScope and is not safe
// for concurrent use.
type Scope struct {
	sys     Syscalls
	grants  []*grant
	revoked int
	closed  bool
}

// WithScope runs body with a fresh Scope and revokes every grant made through
// it once body returns, in reverse order of creation.
//
// Revocation happens on every exit path, including early returns, errors and
// panics. Errors from revocation are combined with the error from body.
func WithScope(s Syscalls, body func(*Scope) error) (err error) {
	sc := &Scope{sys: s}
	defer func() {
		if cerr := sc.close(); cerr != nil {
			if err == nil {
				err = cerr
			} else {
				err = multierror.Append(err, cerr)
			}
		}
	}()
	return body(sc)
}

// Grant is a subscription or buffer allow requested up front.
type Grant interface {
	apply(sc *Scope) error
}

// SubscribeGrant requests that Listener is bound to an upcall slot.
type SubscribeGrant struct {
	Driver   DriverNum
	ID       SubscribeID
	Listener Upcall
}

func (g SubscribeGrant) apply(sc *Scope) error {
	return sc.Subscribe(g.Driver, g.ID, g.Listener)
}

// AllowGrant requests that Buffer is shared with a driver.
type AllowGrant struct {
	Driver DriverNum
	ID     BufferID
	Buffer []byte
}

func (g AllowGrant) apply(sc *Scope) error {
	return sc.AllowReadWrite(g.Driver, g.ID, g.Buffer)
}

// Grants registers every grant in order and then runs body.
//
// If a grant fails, the grants made before it are revoked and the error is
// returned without running body.
func Grants(s Syscalls, grants []Grant, body func(*Scope) error) error {
	return WithScope(s, func(sc *Scope) error {
		for _, g := range grants {
			if err := g.apply(sc); err != nil {
				return err
			}
		}
		if body == nil {
			return nil
		}
		return body(sc)
	})
}

// SubscribeHandle reserves an upcall slot in the scope.
//
// Handles are independent: a scope may hold several and use them in any
// order. Reserving the same slot twice returns the same handle.
func (sc *Scope) SubscribeHandle(driver DriverNum, id SubscribeID) SubscribeHandle {
	for _, g := range sc.grants {
		if g.kind == grantSubscribe && g.driver == driver && g.sub == id {
			return SubscribeHandle{sc, g}
		}
	}
	g := &grant{kind: grantSubscribe, driver: driver, sub: id}
	sc.grants = append(sc.grants, g)
	return SubscribeHandle{sc, g}
}

// AllowHandle reserves a read-write allow slot in the scope.
func (sc *Scope) AllowHandle(driver DriverNum, id BufferID) AllowHandle {
	for _, g := range sc.grants {
		if g.kind == grantAllowRW && g.driver == driver && g.buf == id {
			return AllowHandle{sc, g}
		}
	}
	g := &grant{kind: grantAllowRW, driver: driver, buf: id}
	sc.grants = append(sc.grants, g)
	return AllowHandle{sc, g}
}

// Subscribe binds l to the upcall slot for the rest of the scope.
func (sc *Scope) Subscribe(driver DriverNum, id SubscribeID, l Upcall) error {
	return sc.SubscribeHandle(driver, id).Subscribe(l)
}

// AllowReadWrite shares buf with the driver for the rest of the scope.
func (sc *Scope) AllowReadWrite(driver DriverNum, id BufferID, buf []byte) error {
	return sc.AllowHandle(driver, id).Allow(buf)
}

// Active returns the number of grants currently registered with the kernel.
func (sc *Scope) Active() int {
	n := 0
	for _, g := range sc.grants {
		if g.bound {
			n++
		}
	}
	return n
}

// Revoked returns the number of grants revoked when the scope exited.
func (sc *Scope) Revoked() int {
	return sc.revoked
}

func (sc *Scope) close() error {
	if sc.closed {
		return nil
	}
	sc.closed = true

	var errs *multierror.Error
	for i := len(sc.grants) - 1; i >= 0; i-- {
		g := sc.grants[i]
		if !g.bound {
			continue
		}
		if err := sc.revoke(g); err != nil {
			errs = multierror.Append(errs, err)
		}
		g.bound = false
		sc.revoked++
	}
	return errs.ErrorOrNil()
}

func (sc *Scope) revoke(g *grant) error {
	switch g.kind {
	case grantSubscribe:
		if g.prevListener == nil {
			sc.sys.Unsubscribe(g.driver, g.sub)
			return nil
		}
		_, err := sc.sys.Subscribe(g.driver, g.sub, g.prevListener)
		return err
	case grantAllowRW:
		_, err := sc.sys.AllowReadWrite(g.driver, g.buf, g.prevBuffer)
		return err
	default:
		return nil
	}
}

// SubscribeHandle is a reserved upcall slot within a Scope.
type SubscribeHandle struct {
	sc *Scope
	g  *grant
}

// Subscribe binds l to the slot.
//
// The slot may be rebound any number of times while the scope is active; on
// exit it is restored to the listener it held before the first bind.
func (h SubscribeHandle) Subscribe(l Upcall) error {
	if h.sc.closed {
		return errScopeClosed
	}
	if l == nil {
		return ErrInvalid
	}
	prev, err := h.sc.sys.Subscribe(h.g.driver, h.g.sub, l)
	if err != nil {
		return err
	}
	if !h.g.bound {
		h.g.prevListener = prev
		h.g.bound = true
	}
	return nil
}

// AllowHandle is a reserved read-write allow slot within a Scope.
type AllowHandle struct {
	sc *Scope
	g  *grant
}

// Allow shares buf with the driver.
//
// Re-allowing hands the previously allowed buffer back to the caller. On scope
// exit the slot is restored to the buffer it held before the first allow.
func (h AllowHandle) Allow(buf []byte) error {
	if h.sc.closed {
		return errScopeClosed
	}
	prev, err := h.sc.sys.AllowReadWrite(h.g.driver, h.g.buf, buf)
	if err != nil {
		return err
	}
	if !h.g.bound {
		h.g.prevBuffer = prev
		h.g.bound = true
	}
	return nil
}
