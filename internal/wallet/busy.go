package wallet

import "sync/atomic"

// Busy is a per-controller in-flight flag. The zero value is idle.
type Busy struct {
	flag atomic.Bool
}

// TryAcquire marks the controller busy. It returns false if it already was.
func (b *Busy) TryAcquire() bool {
	return b.flag.CompareAndSwap(false, true)
}

func (b *Busy) Release() {
	b.flag.Store(false)
}

func (b *Busy) Active() bool {
	return b.flag.Load()
}

// Fence hands out monotonically increasing tickets so a controller can
// discard a response when a newer request (or a detach) happened meanwhile.
type Fence struct {
	seq atomic.Uint64
}

// Next issues a new ticket and invalidates all earlier ones.
func (f *Fence) Next() uint64 {
	return f.seq.Add(1)
}

// Latest reports whether ticket is still the most recent one issued.
func (f *Fence) Latest(ticket uint64) bool {
	return f.seq.Load() == ticket
}
