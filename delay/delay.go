// Package delay provides fixed-capacity delay-line primitives for real-time
// audio processing.
//
// RingBuffer and FixedDelay are built to run inside a hard-deadline audio
// callback: no operation allocates, blocks, or takes a lock, and every
// operation completes in O(1). Instances are strictly single-owner; a
// processing voice that needs its own delay line must hold its own buffer.
// Out-of-range taps are caller bugs and panic rather than returning a
// sentinel, so mistakes surface during development instead of as corrupted
// audio.
package delay

import "fmt"

// RingBuffer is a fixed-capacity circular sample store with relative-delay
// reads. A buffer constructed for maxDelay d holds d+1 samples, all
// initially zero, so every tap in [0, d] is valid immediately.
type RingBuffer struct {
	buffer    []float64
	writeHead int
}

// NewRingBuffer returns a ring buffer able to serve taps in [0, maxDelay].
func NewRingBuffer(maxDelay int) *RingBuffer {
	if maxDelay < 0 {
		panic(fmt.Sprintf("delay: negative maxDelay %d", maxDelay))
	}
	return &RingBuffer{buffer: make([]float64, maxDelay+1)}
}

// Push advances the write head one slot and stores x there, overwriting the
// oldest sample. It returns the receiver so pushes can chain into taps:
//
//	out := rb.Push(in).Tap(d)
func (r *RingBuffer) Push(x float64) *RingBuffer {
	r.writeHead++
	if r.writeHead == len(r.buffer) {
		r.writeHead = 0
	}
	r.buffer[r.writeHead] = x
	return r
}

// Tap returns the sample pushed exactly d pushes ago, or 0 if fewer than d
// pushes have occurred since construction or Reset. d must be in
// [0, Len()); anything else panics.
func (r *RingBuffer) Tap(d int) float64 {
	if d < 0 || d >= len(r.buffer) {
		panic(fmt.Sprintf("delay: tap %d outside [0, %d)", d, len(r.buffer)))
	}
	idx := r.writeHead - d
	if idx < 0 {
		idx += len(r.buffer)
	}
	return r.buffer[idx]
}

// At is indexed access sugar for Tap.
func (r *RingBuffer) At(d int) float64 { return r.Tap(d) }

// Len returns the buffer capacity, i.e. the maximum valid tap plus one.
func (r *RingBuffer) Len() int { return len(r.buffer) }

// Reset zeroes the stored samples in place without reallocating.
func (r *RingBuffer) Reset() {
	for i := range r.buffer {
		r.buffer[i] = 0
	}
}

// FixedDelay is a single-tap delay line: one sample in, the sample from a
// fixed number of steps earlier out. The delay is set at construction and
// never changes.
type FixedDelay struct {
	buffer *RingBuffer
	delay  int
}

// NewFixedDelay returns a delay line with the given delay in samples.
func NewFixedDelay(delay int) *FixedDelay {
	return &FixedDelay{buffer: NewRingBuffer(delay), delay: delay}
}

// Step pushes x into the line and returns the sample that entered exactly
// Delay() steps earlier, or 0 while the line is still filling.
func (f *FixedDelay) Step(x float64) float64 {
	return f.buffer.Push(x).Tap(f.delay)
}

// Delay returns the fixed delay length in samples.
func (f *FixedDelay) Delay() int { return f.delay }

// Reset zeroes the line.
func (f *FixedDelay) Reset() { f.buffer.Reset() }
