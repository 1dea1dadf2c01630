package platform

import "fmt"

// Upcall is a listener invoked by the kernel when a subscribed event fires.
//
// Upcall is called synchronously from inside a yield. It must not call
// YieldWait itself.
type Upcall interface {
	Upcall(arg0, arg1, arg2 uint32)
}

// UpcallFunc adapts a function to the Upcall interface.
type UpcallFunc func(arg0, arg1, arg2 uint32)

// Upcall calls f(arg0, arg1, arg2).
func (f UpcallFunc) Upcall(arg0, arg1, arg2 uint32) {
	f(arg0, arg1, arg2)
}

// Payload is the 3-word record delivered with an upcall.
type Payload [3]uint32

func (p Payload) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p[0], p[1], p[2])
}

// Cell is a listener that stores the most recent payload delivered to it.
//
// The zero value is empty and ready to use.
type Cell struct {
	payload Payload
	set     bool
	count   int
}

// Upcall implements Upcall.
func (c *Cell) Upcall(arg0, arg1, arg2 uint32) {
	c.payload = Payload{arg0, arg1, arg2}
	c.set = true
	c.count++
}

// Get returns the stored payload and whether one has been delivered.
func (c *Cell) Get() (Payload, bool) {
	return c.payload, c.set
}

// IsSet reports whether a payload has been delivered.
func (c *Cell) IsSet() bool {
	return c.set
}

// Count returns the number of deliveries since the last Reset.
func (c *Cell) Count() int {
	return c.count
}

// Reset empties the cell.
func (c *Cell) Reset() {
	*c = Cell{}
}
