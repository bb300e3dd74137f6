// Package tlv implements the Type-Length-Value wire encoding that all
// packet structures in this module share: variable-size TLV numbers,
// NonNegativeInteger payloads, parsed blocks, and a backward-growing
// encoding buffer with a size-only twin.
package tlv

import (
	"fmt"
	"math"
)

// TLV-TYPE numbers used by the MPRList wire format. Preference reuses the
// MPRList number; the two never appear at the same nesting level.
const (
	TypeImplicitSha256Digest uint32 = 1
	TypeName                 uint32 = 7
	TypeGenericNameComponent uint32 = 8
	TypeContent              uint32 = 21
	TypeMPRList              uint32 = 30
	TypeDelegation           uint32 = 31
	TypePreference           uint32 = 30
)

// Error reports a violation of the TLV framing rules, optionally wrapping
// a lower-level cause.
type Error struct {
	Msg   string
	Cause error
}

func errf(cause error, format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// VarNumSize returns the encoded size of a TLV-TYPE or TLV-LENGTH number.
func VarNumSize(v uint64) int {
	switch {
	case v < 253:
		return 1
	case v <= math.MaxUint16:
		return 3
	case v <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

// NonNegativeIntegerSize returns the payload size of a NonNegativeInteger:
// the smallest of 1, 2, 4 or 8 bytes that fits v.
func NonNegativeIntegerSize(v uint64) int {
	switch {
	case v <= math.MaxUint8:
		return 1
	case v <= math.MaxUint16:
		return 2
	case v <= math.MaxUint32:
		return 4
	default:
		return 8
	}
}

// ReadNonNegativeInteger decodes a big-endian NonNegativeInteger payload.
// Only the four fixed widths are valid.
func ReadNonNegativeInteger(value []byte) (uint64, error) {
	switch len(value) {
	case 1:
		return uint64(value[0]), nil
	case 2:
		return uint64(value[0])<<8 | uint64(value[1]), nil
	case 4:
		return uint64(value[0])<<24 | uint64(value[1])<<16 | uint64(value[2])<<8 | uint64(value[3]), nil
	case 8:
		var v uint64
		for _, b := range value {
			v = v<<8 | uint64(b)
		}
		return v, nil
	default:
		return 0, errf(nil, "invalid NonNegativeInteger payload of %d bytes", len(value))
	}
}

// decoder consumes TLV primitives from the front of a buffer, keeping the
// original around so errors can report an absolute offset.
type decoder struct {
	orig []byte
	buf  []byte
}

func makeDecoder(buf []byte) decoder {
	return decoder{buf, buf}
}

func (d *decoder) off() int {
	return len(d.orig) - len(d.buf)
}

func (d *decoder) empty() bool {
	return len(d.buf) == 0
}

func (d *decoder) varNum() (uint64, error) {
	if len(d.buf) == 0 {
		return 0, errf(nil, "truncated TLV number at offset %d", d.off())
	}
	first := d.buf[0]
	var v uint64
	var n int
	switch first {
	case 253:
		n = 3
		if len(d.buf) < n {
			return 0, errf(nil, "truncated TLV number at offset %d", d.off())
		}
		v = uint64(d.buf[1])<<8 | uint64(d.buf[2])
	case 254:
		n = 5
		if len(d.buf) < n {
			return 0, errf(nil, "truncated TLV number at offset %d", d.off())
		}
		v = uint64(d.buf[1])<<24 | uint64(d.buf[2])<<16 | uint64(d.buf[3])<<8 | uint64(d.buf[4])
	case 255:
		n = 9
		if len(d.buf) < n {
			return 0, errf(nil, "truncated TLV number at offset %d", d.off())
		}
		for _, b := range d.buf[1:9] {
			v = v<<8 | uint64(b)
		}
	default:
		n = 1
		v = uint64(first)
	}
	d.buf = d.buf[n:]
	return v, nil
}

func (d *decoder) raw(n int) ([]byte, error) {
	if uint64(len(d.buf)) < uint64(n) {
		return nil, errf(nil, "not enough data at offset %d: %d bytes remaining, %d wanted", d.off(), len(d.buf), n)
	}
	v := d.buf[:n]
	d.buf = d.buf[n:]
	return v, nil
}

// typeLength reads one TLV-TYPE and TLV-LENGTH pair. TLV-TYPE zero and
// values beyond the 4-byte range are reserved and rejected.
func (d *decoder) typeLength() (uint32, int, error) {
	typ, err := d.varNum()
	if err != nil {
		return 0, 0, err
	}
	if typ == 0 || typ > math.MaxUint32 {
		return 0, 0, errf(nil, "invalid TLV-TYPE %d at offset %d", typ, d.off())
	}
	length, err := d.varNum()
	if err != nil {
		return 0, 0, err
	}
	if length > uint64(len(d.buf)) {
		return 0, 0, errf(nil, "TLV-LENGTH %d at offset %d exceeds %d remaining bytes", length, d.off(), len(d.buf))
	}
	return uint32(typ), int(length), nil
}
