package mutate

import "google.golang.org/protobuf/encoding/protowire"

// ByteReader is the total decoder cursor every mutator's Read consumes from.
// "Total" means it never errors: a short read is zero-padded, and any
// excess bytes are simply left unconsumed for the parent combinator
// (spec.md §4.3, §6.1).
type ByteReader struct {
	buf []byte
	pos int
}

// NewByteReader wraps b for reading. b is not copied; callers must not
// mutate it while the reader is in use.
func NewByteReader(b []byte) *ByteReader {
	return &ByteReader{buf: b}
}

// ReadN returns exactly n bytes, zero-padding past the end of the buffer.
func (r *ByteReader) ReadN(n int) []byte {
	out := make([]byte, n)

	avail := len(r.buf) - r.pos
	if avail < 0 {
		avail = 0
	}

	take := n
	if take > avail {
		take = avail
	}

	if take > 0 {
		copy(out, r.buf[r.pos:r.pos+take])
		r.pos += take
	}

	return out
}

// ReadVarint reads an unsigned LEB128 varint. A missing or truncated varint
// decodes to 0 rather than failing, preserving decoder totality.
func (r *ByteReader) ReadVarint() uint64 {
	if r.pos >= len(r.buf) {
		return 0
	}

	v, n := protowire.ConsumeVarint(r.buf[r.pos:])
	if n < 0 {
		r.pos = len(r.buf)

		return 0
	}

	r.pos += n

	return v
}

// Remaining returns the bytes not yet consumed, left for the parent combinator.
func (r *ByteReader) Remaining() []byte {
	if r.pos >= len(r.buf) {
		return nil
	}

	return r.buf[r.pos:]
}

// ByteWriter accumulates the framing every mutator's Write appends to.
type ByteWriter struct {
	buf []byte
}

// NewByteWriter returns an empty writer.
func NewByteWriter() *ByteWriter {
	return &ByteWriter{}
}

// WriteN appends b verbatim.
func (w *ByteWriter) WriteN(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteVarint appends v as an unsigned LEB128 varint.
func (w *ByteWriter) WriteVarint(v uint64) {
	w.buf = protowire.AppendVarint(w.buf, v)
}

// Bytes returns the accumulated framing.
func (w *ByteWriter) Bytes() []byte {
	return w.buf
}
