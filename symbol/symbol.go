package symbol

import (
	"github.com/wippyai/contractgen/errors"
)

// MaxLen is the maximum number of characters in a Symbol.
const MaxLen = 10

const (
	codeBits = 6
	codeMask = 1<<codeBits - 1
)

// Symbol is a validated compact identifier.
type Symbol uint64

// New validates name and packs it into a Symbol.
func New(name string) (Symbol, error) {
	if err := CheckName(name, MaxLen); err != nil {
		return 0, err
	}
	var s Symbol
	for i := 0; i < len(name); i++ {
		s = s<<codeBits | Symbol(encodeChar(name[i]))
	}
	return s, nil
}

// MustNew is like New but panics on an invalid name. Intended for constants.
func MustNew(name string) Symbol {
	s, err := New(name)
	if err != nil {
		panic(err)
	}
	return s
}

// CheckName validates name against the identifier charset and maxLen.
// Type names use the same rules with a larger bound.
func CheckName(name string, maxLen int) error {
	if name == "" {
		return errors.InvalidIdentifier(errors.PhaseGenerate, nil, name, "empty identifier")
	}
	if len(name) > maxLen {
		return errors.IdentifierTooLong(errors.PhaseGenerate, nil, name, maxLen)
	}
	for i := 0; i < len(name); i++ {
		if encodeChar(name[i]) == 0 {
			return errors.InvalidIdentifier(errors.PhaseGenerate, nil, name,
				"character "+quoteByte(name[i])+" is not in [A-Za-z0-9_]")
		}
	}
	return nil
}

// String decodes the symbol back into its name.
func (s Symbol) String() string {
	var buf [MaxLen]byte
	n := len(buf)
	for v := uint64(s); v != 0 && n > 0; v >>= codeBits {
		n--
		buf[n] = decodeChar(byte(v & codeMask))
	}
	return string(buf[n:])
}

// Len returns the number of characters in the symbol.
func (s Symbol) Len() int {
	n := 0
	for v := uint64(s); v != 0; v >>= codeBits {
		n++
	}
	return n
}

func encodeChar(c byte) byte {
	switch {
	case c == '_':
		return 1
	case c >= '0' && c <= '9':
		return 2 + c - '0'
	case c >= 'A' && c <= 'Z':
		return 12 + c - 'A'
	case c >= 'a' && c <= 'z':
		return 38 + c - 'a'
	default:
		return 0
	}
}

func decodeChar(code byte) byte {
	switch {
	case code == 1:
		return '_'
	case code >= 2 && code <= 11:
		return '0' + code - 2
	case code >= 12 && code <= 37:
		return 'A' + code - 12
	case code >= 38 && code <= 63:
		return 'a' + code - 38
	default:
		return '?'
	}
}

func quoteByte(c byte) string {
	if c < 0x20 || c >= 0x7f {
		const hex = "0123456789abcdef"
		return `'\x` + string(hex[c>>4]) + string(hex[c&0xf]) + `'`
	}
	return "'" + string(c) + "'"
}
