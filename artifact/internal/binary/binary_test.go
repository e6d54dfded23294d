package binary

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestWriterU32(t *testing.T) {
	tests := []struct {
		v    uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{624485, []byte{0xe5, 0x8e, 0x26}},
		{0xffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}

	for _, tt := range tests {
		w := NewWriter()
		w.WriteU32(tt.v)
		if !bytes.Equal(w.Bytes(), tt.want) {
			t.Errorf("WriteU32(%d) = %x, want %x", tt.v, w.Bytes(), tt.want)
		}

		r := NewReader(tt.want)
		got, err := r.ReadU32()
		if err != nil {
			t.Fatalf("ReadU32(%x): %v", tt.want, err)
		}
		if got != tt.v {
			t.Errorf("ReadU32(%x) = %d, want %d", tt.want, got, tt.v)
		}
		if r.Position() != len(tt.want) {
			t.Errorf("position = %d, want %d", r.Position(), len(tt.want))
		}
	}
}

func TestReaderU32Overflow(t *testing.T) {
	r := NewReader([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01})
	if _, err := r.ReadU32(); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}

func TestNameAndVec(t *testing.T) {
	w := NewWriter()
	w.WriteName("contractspecv0")
	w.WriteVec([]byte{1, 2, 3})
	w.Byte(0xaa)

	r := NewReader(w.Bytes())
	name, err := r.ReadName()
	if err != nil || name != "contractspecv0" {
		t.Fatalf("ReadName = %q, %v", name, err)
	}
	vec, err := r.ReadVec()
	if err != nil || !bytes.Equal(vec, []byte{1, 2, 3}) {
		t.Fatalf("ReadVec = %v, %v", vec, err)
	}
	rest, err := r.ReadRemaining()
	if err != nil || !bytes.Equal(rest, []byte{0xaa}) {
		t.Fatalf("ReadRemaining = %v, %v", rest, err)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestReaderShortInput(t *testing.T) {
	r := NewReader([]byte{0x05, 'a', 'b'})
	if _, err := r.ReadName(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}

	r = NewReader([]byte{0x02, 0xff, 0xfe})
	if _, err := r.ReadName(); err == nil {
		t.Error("expected UTF-8 error")
	}

	r = NewReader(nil)
	if _, err := r.ReadByte(); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestParseError(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, _ = r.ReadByte()
	err := r.WrapError("custom section", io.EOF)

	var pe *ParseError
	if !errors.As(err, &pe) || pe.Position != 1 {
		t.Fatalf("unexpected error %v", err)
	}
	if !errors.Is(err, io.EOF) {
		t.Error("ParseError should unwrap to cause")
	}
	if got := err.Error(); got != "wasm: custom section at position 1: EOF" {
		t.Errorf("Error() = %q", got)
	}
}
