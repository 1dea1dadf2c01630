package fake

import (
	"crypto/sha256"
	"sync"

	"github.com/northvolt/go-libtock/platform"
	"golang.org/x/crypto/chacha20"
)

// Driver number, command and slot ids of the random number generator.
const (
	RngDriverNum platform.DriverNum = 0x40001

	RngCommandExists          platform.CommandID = 0
	RngCommandAskForRandBytes platform.CommandID = 1

	RngAllowBuffer platform.BufferID    = 0
	RngUpcall      platform.SubscribeID = 0
)

// Rng is a fake random number generator.
//
// After an ask command, bytes fed with AddBytes are written into the allowed
// buffer; once the requested count is reached (or the buffer is full) the
// driver answers with the upcall (0, count, 0).
//
// AddBytesSync stores bytes that are fed as soon as the next ask command
// arrives, so the upcall is already pending when the command returns. The
// stored bytes are used up by that command even if they fall short of the
// requested count. A seeded
// Rng behaves the same way with bytes taken from a ChaCha20 keystream.
type Rng struct {
	mu  sync.Mutex
	ref *DriverShareRef

	buffer            []byte
	remaining         int
	idx               int
	gettingRandomness bool

	randomNumbers []byte
	hasNumbers    bool
	stream        *chacha20.Cipher
}

// NewRng returns a fake random number generator.
func NewRng() *Rng {
	return &Rng{}
}

// Info implements SyscallDriver.
func (r *Rng) Info() DriverInfo {
	return DriverInfo{Num: RngDriverNum, UpcallCount: 1}
}

// Register implements SyscallDriver.
func (r *Rng) Register(ref *DriverShareRef) {
	r.mu.Lock()
	r.ref = ref
	r.mu.Unlock()
}

// Seed makes the driver answer every ask command immediately with bytes from
// a ChaCha20 keystream keyed by seed.
func (r *Rng) Seed(seed []byte) error {
	key := sha256.Sum256(seed)
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.stream = c
	r.mu.Unlock()
	return nil
}

// AddBytes feeds random bytes to an outstanding request.
//
// It does nothing when no request is outstanding.
func (r *Rng) AddBytes(buf []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addBytes(buf)
}

// AddBytesSync stores bytes to answer the next ask command with.
func (r *Rng) AddBytesSync(buf []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.randomNumbers = append([]byte(nil), buf...)
	r.hasNumbers = true
}

// IsGettingRandomness reports whether a request is outstanding.
func (r *Rng) IsGettingRandomness() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gettingRandomness
}

func (r *Rng) addBytes(buf []byte) {
	if !r.gettingRandomness {
		return
	}

	if r.idx > len(r.buffer) {
		// the buffer was swapped for a smaller one
		r.idx = 0
		r.remaining = 0
	} else {
		if r.idx+r.remaining > len(r.buffer) {
			r.remaining = len(r.buffer) - r.idx
		}
		n := r.remaining
		if len(buf) < n {
			n = len(buf)
		}
		copy(r.buffer[r.idx:r.idx+n], buf[:n])
		r.remaining -= n
		r.idx += n
	}

	if r.remaining == 0 {
		r.ref.schedule(RngUpcall, 0, uint32(r.idx), 0)
		r.gettingRandomness = false
	}
}

// AllowReadWrite implements AllowReadWriter.
func (r *Rng) AllowReadWrite(id platform.BufferID, buf []byte) ([]byte, error) {
	if id != RngAllowBuffer {
		return buf, platform.ErrInvalid
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.buffer
	r.buffer = buf
	return prev, nil
}

// Command implements SyscallDriver.
func (r *Rng) Command(cmd platform.CommandID, arg0, _ uint32) platform.CommandReturn {
	switch cmd {
	case RngCommandExists:
		return platform.Success()
	case RngCommandAskForRandBytes:
		r.mu.Lock()
		defer r.mu.Unlock()
		r.remaining = int(arg0)
		r.idx = 0
		r.gettingRandomness = true

		switch {
		case r.hasNumbers:
			b := r.randomNumbers
			r.randomNumbers = nil
			r.hasNumbers = false
			r.addBytes(b)
		case r.stream != nil:
			n := len(r.buffer)
			if int(arg0) < n {
				n = int(arg0)
			}
			b := make([]byte, n)
			r.stream.XORKeyStream(b, b)
			r.addBytes(b)
		}
		return platform.Success()
	default:
		return platform.Failure(platform.ErrNoSupport)
	}
}
