package domain

import "sync/atomic"

// Blob is an immutable byte buffer with a manual reference count, matching
// the shared-ownership contract compiler backends expect from a file
// resolver: the cache holds one reference for the lifetime of the process,
// and every caller that receives the blob holds another until it calls
// Release.
type Blob struct {
	data []byte
	refs atomic.Int32
}

// NewBlob copies data into a new Blob with a reference count of one. The
// caller's slice may be reused or freed immediately after.
func NewBlob(data []byte) *Blob {
	b := &Blob{data: append([]byte(nil), data...)}
	b.refs.Store(1)
	return b
}

// Retain increments the reference count and returns the blob so call sites
// can hand out an aliased reference in one expression.
func (b *Blob) Retain() *Blob {
	if b.refs.Add(1) <= 1 {
		panic("domain: retain of a released blob")
	}
	return b
}

// Release decrements the reference count. At the 1->0 transition the backing
// storage is dropped; the blob must not be used afterwards. Releasing a blob
// already at zero is a programmer error and panics.
func (b *Blob) Release() {
	n := b.refs.Add(-1)
	if n < 0 {
		panic("domain: release of a blob with zero references")
	}
	if n == 0 {
		b.data = nil
	}
}

// Bytes returns the underlying data. Valid only while the caller holds at
// least one reference.
func (b *Blob) Bytes() []byte { return b.data }

// Len returns the buffer length in bytes.
func (b *Blob) Len() int { return len(b.data) }

// RefCount reports the current reference count. Used by invariant checks
// and tests; not part of the resolver contract.
func (b *Blob) RefCount() int { return int(b.refs.Load()) }
