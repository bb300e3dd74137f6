package name

import (
	"bytes"
	"strings"

	"github.com/openndn/mprlist/tlv"
)

// Component is a single name component: a TLV-TYPE number and a byte
// value. Components are immutable once constructed.
type Component struct {
	typ uint32
	val []byte
}

// NewComponent makes a component from a type number and value bytes.
// The value is copied.
func NewComponent(typ uint32, value []byte) Component {
	return Component{typ: typ, val: bytes.Clone(value)}
}

// Generic makes a GenericNameComponent from literal bytes.
func Generic(value string) Component {
	return Component{typ: tlv.TypeGenericNameComponent, val: []byte(value)}
}

func (c Component) Type() uint32 {
	return c.typ
}

// Value returns the component's bytes. The slice must not be modified.
func (c Component) Value() []byte {
	return c.val
}

// Compare orders components canonically: by TLV-TYPE, then by length,
// then lexicographically by value bytes.
func (c Component) Compare(other Component) int {
	if c.typ != other.typ {
		if c.typ < other.typ {
			return -1
		}
		return 1
	}
	if len(c.val) != len(other.val) {
		if len(c.val) < len(other.val) {
			return -1
		}
		return 1
	}
	return bytes.Compare(c.val, other.val)
}

func (c Component) Equal(other Component) bool {
	return c.typ == other.typ && bytes.Equal(c.val, other.val)
}

// String formats the component in URI form: unreserved characters appear
// literally, everything else is percent-encoded, and a value made up
// entirely of periods gains three extra dots.
func (c Component) String() string {
	var sb strings.Builder
	if allPeriods(c.val) {
		sb.Write(c.val)
		sb.WriteString("...")
		return sb.String()
	}
	for _, b := range c.val {
		if isUnreserved(b) {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(hexDigits[b>>4])
			sb.WriteByte(hexDigits[b&0xF])
		}
	}
	return sb.String()
}

func (c Component) wireEncode(enc tlv.Encoder) int {
	n := enc.PrependBytes(c.val)
	n += enc.PrependVarNum(uint64(len(c.val)))
	n += enc.PrependVarNum(uint64(c.typ))
	return n
}

const hexDigits = "0123456789ABCDEF"

func isUnreserved(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' ||
		b == '-' || b == '.' || b == '_' || b == '~'
}

func allPeriods(val []byte) bool {
	for _, b := range val {
		if b != '.' {
			return false
		}
	}
	return true
}

// parseComponent decodes one URI segment into a generic component,
// undoing percent-escapes and the trailing-dots convention.
func parseComponent(segment string) (Component, error) {
	raw := make([]byte, 0, len(segment))
	for i := 0; i < len(segment); i++ {
		b := segment[i]
		if b != '%' {
			raw = append(raw, b)
			continue
		}
		if i+2 >= len(segment) {
			return Component{}, errf(nil, "truncated percent-escape in component %q", segment)
		}
		hi, ok1 := unhex(segment[i+1])
		lo, ok2 := unhex(segment[i+2])
		if !ok1 || !ok2 {
			return Component{}, errf(nil, "invalid percent-escape in component %q", segment)
		}
		raw = append(raw, hi<<4|lo)
		i += 2
	}
	if allPeriods(raw) {
		if len(raw) < 3 {
			return Component{}, errf(nil, "component %q consists of fewer than three periods", segment)
		}
		raw = raw[:len(raw)-3]
	}
	return Component{typ: tlv.TypeGenericNameComponent, val: raw}, nil
}

func unhex(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
