package schema

import (
	"bytes"
	"encoding/binary"
)

// writer provides XDR primitives over a growing buffer.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) bool(v bool) {
	if v {
		w.u32(1)
	} else {
		w.u32(0)
	}
}

// string writes a length-prefixed string padded to a 4-byte boundary.
func (w *writer) string(s string) {
	w.u32(uint32(len(s)))
	w.buf.WriteString(s)
	if pad := (4 - len(s)%4) % 4; pad > 0 {
		w.buf.Write(make([]byte, pad))
	}
}

func (w *writer) bytes() []byte {
	return w.buf.Bytes()
}

// reader consumes XDR primitives from a byte slice.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) u32() (uint32, bool) {
	if r.remaining() < 4 {
		return 0, false
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, true
}

func (r *reader) string(maxLen int) (string, bool) {
	n, ok := r.u32()
	if !ok || int(n) > maxLen {
		return "", false
	}
	padded := int(n) + (4-int(n)%4)%4
	if r.remaining() < padded {
		return "", false
	}
	s := string(r.data[r.pos : r.pos+int(n)])
	for _, b := range r.data[r.pos+int(n) : r.pos+padded] {
		if b != 0 {
			return "", false
		}
	}
	r.pos += padded
	return s, true
}
