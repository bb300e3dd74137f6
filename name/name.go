// Package name implements hierarchical names: ordered sequences of typed
// components with a canonical total order, a URI form, and a TLV wire
// codec. Names are the keys that delegations point at.
package name

import (
	"fmt"
	"strings"

	"github.com/openndn/mprlist/tlv"
)

// Name is an ordered sequence of components. The zero value is the empty
// name, printed as "/".
type Name []Component

// Error reports a malformed name URI or wire encoding.
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

// Parse converts a URI like "/a/b/%00%01" into a Name. Empty segments are
// ignored, so "/", "" and "//" all yield the empty name.
func Parse(uri string) (Name, error) {
	uri = strings.TrimPrefix(uri, "ndn:")
	var n Name
	for _, segment := range strings.Split(uri, "/") {
		if segment == "" {
			continue
		}
		c, err := parseComponent(segment)
		if err != nil {
			return nil, err
		}
		n = append(n, c)
	}
	return n, nil
}

// MustParse is Parse for statically known URIs; it panics on error.
func MustParse(uri string) Name {
	n, err := Parse(uri)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Name) String() string {
	if len(n) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, c := range n {
		sb.WriteByte('/')
		sb.WriteString(c.String())
	}
	return sb.String()
}

// Len returns the number of components.
func (n Name) Len() int {
	return len(n)
}

// Append returns a new name with the given components added at the end.
func (n Name) Append(comps ...Component) Name {
	out := make(Name, 0, len(n)+len(comps))
	out = append(out, n...)
	return append(out, comps...)
}

// Compare orders names canonically: component by component, with a proper
// prefix sorting before any name it prefixes.
func (n Name) Compare(other Name) int {
	limit := len(n)
	if len(other) < limit {
		limit = len(other)
	}
	for i := 0; i < limit; i++ {
		if c := n[i].Compare(other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(n) < len(other):
		return -1
	case len(n) > len(other):
		return 1
	default:
		return 0
	}
}

func (n Name) Equal(other Name) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if !n[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// WireEncode prepends the name's complete TLV element (type, length and
// all components) to enc, returning the number of bytes written.
func (n Name) WireEncode(enc tlv.Encoder) int {
	totalLen := 0
	for i := len(n) - 1; i >= 0; i-- {
		totalLen += n[i].wireEncode(enc)
	}
	totalLen += enc.PrependVarNum(uint64(totalLen))
	totalLen += enc.PrependVarNum(uint64(tlv.TypeName))
	return totalLen
}

// Bytes returns the name's wire encoding as a fresh byte slice.
func (n Name) Bytes() []byte {
	buf := tlv.NewBuffer(n.WireEncode(tlv.Estimator{}))
	n.WireEncode(buf)
	return buf.Bytes()
}

// FromBlock decodes a name from a parsed TLV block. Component values are
// copied, so the result does not alias the wire buffer.
func FromBlock(b *tlv.Block) (Name, error) {
	if b.Type() != tlv.TypeName {
		return nil, errf(nil, "unexpected TLV-TYPE %d while decoding Name", b.Type())
	}
	if err := b.Parse(); err != nil {
		return nil, errf(err, "cannot parse Name")
	}
	elements := b.Elements()
	n := make(Name, 0, len(elements))
	for i := range elements {
		n = append(n, NewComponent(elements[i].Type(), elements[i].Value()))
	}
	return n, nil
}

// FromBytes decodes a name occupying the whole of wire.
func FromBytes(wire []byte) (Name, error) {
	b, err := tlv.FromBytes(wire)
	if err != nil {
		return nil, errf(err, "cannot decode Name")
	}
	return FromBlock(b)
}
