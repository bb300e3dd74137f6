package mprlist

import (
	"fmt"

	"github.com/openndn/mprlist/name"
	"github.com/openndn/mprlist/tlv"
)

func validWireType(typ uint32) bool {
	switch typ {
	case tlv.TypeContent, tlv.TypeMPRList:
		return true
	default:
		return false
	}
}

// WireEncode prepends the list's complete TLV element to enc under the
// given outer type, returning the number of bytes written. It works
// identically against a materializing tlv.Buffer and a size-only
// tlv.Estimator. Entries are emitted in current list order; the
// sortedness flag is not consulted.
//
// The outer type must be tlv.TypeContent or tlv.TypeMPRList, and the
// list must not be empty.
func (l *List) WireEncode(enc tlv.Encoder, typ uint32) (int, error) {
	if !validWireType(typ) {
		return 0, fmt.Errorf("%w: %d", ErrOuterType, typ)
	}
	if len(l.dels) == 0 {
		return 0, wireErrf(nil, "empty MPRList")
	}

	// Prepending means walking entries back to front, innermost fields
	// first, so each TLV-LENGTH is known when it is written.
	totalLen := 0
	for i := len(l.dels) - 1; i >= 0; i-- {
		d := l.dels[i]
		delLen := d.Name.WireEncode(enc)
		delLen += tlv.PrependNonNegativeIntegerBlock(enc, tlv.TypePreference, d.Preference)
		delLen += enc.PrependVarNum(uint64(delLen))
		delLen += enc.PrependVarNum(uint64(tlv.TypeDelegation))
		totalLen += delLen
	}
	totalLen += enc.PrependVarNum(uint64(totalLen))
	totalLen += enc.PrependVarNum(uint64(typ))
	return totalLen, nil
}

// EncodedSize returns the exact size Encode would produce, without
// materializing any bytes.
func (l *List) EncodedSize(typ uint32) (int, error) {
	return l.WireEncode(tlv.Estimator{}, typ)
}

// Encode returns the list's wire encoding under the given outer type.
func (l *List) Encode(typ uint32) ([]byte, error) {
	n, err := l.WireEncode(tlv.Estimator{}, typ)
	if err != nil {
		return nil, err
	}
	buf := tlv.NewBuffer(n)
	if _, err := l.WireEncode(buf, typ); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WireDecode replaces the list's contents with the delegations parsed
// from block. wantSort chooses the sortedness mode: true re-ranks the
// entries on insertion, false preserves wire order.
//
// Decoding inserts raw, without conflict resolution, so duplicate names
// on the wire are reproduced verbatim. On failure the list has already
// been cleared and may hold a partial prefix of the wire content;
// callers must not rely on either the old or the partial state.
func (l *List) WireDecode(block *tlv.Block, wantSort bool) error {
	if !validWireType(block.Type()) {
		return wireErrf(nil, "unexpected TLV-TYPE %d while decoding MPRList", block.Type())
	}

	l.sorted = wantSort
	l.dels = nil

	if err := block.Parse(); err != nil {
		return wireErrf(err, "cannot parse MPRList")
	}
	elements := block.Elements()
	for i := range elements {
		del := &elements[i]
		if del.Type() != tlv.TypeDelegation {
			return wireErrf(nil, "unexpected TLV-TYPE %d while decoding Delegation", del.Type())
		}
		if err := del.Parse(); err != nil {
			return wireErrf(err, "cannot parse Delegation")
		}

		fields := del.Elements()
		if len(fields) == 0 || fields[0].Type() != tlv.TypePreference {
			return wireErrf(nil, "missing Preference field in Delegation")
		}
		preference, err := tlv.ReadNonNegativeInteger(fields[0].Value())
		if err != nil {
			return wireErrf(err, "invalid Preference field in Delegation")
		}

		if len(fields) < 2 || fields[1].Type() != tlv.TypeName {
			return wireErrf(nil, "missing Name field in Delegation")
		}
		nm, err := name.FromBlock(&fields[1])
		if err != nil {
			return wireErrf(err, "invalid Name field in Delegation")
		}

		l.insertImpl(preference, nm)
	}

	if len(l.dels) == 0 {
		return wireErrf(nil, "empty MPRList")
	}
	return nil
}

// Decode parses a list from a TLV block.
func Decode(block *tlv.Block, wantSort bool) (*List, error) {
	l := new(List)
	if err := l.WireDecode(block, wantSort); err != nil {
		return nil, err
	}
	return l, nil
}

// DecodeBytes parses a list from raw wire bytes holding exactly one TLV
// element.
func DecodeBytes(wire []byte, wantSort bool) (*List, error) {
	block, err := tlv.FromBytes(wire)
	if err != nil {
		return nil, wireErrf(err, "cannot parse MPRList")
	}
	return Decode(block, wantSort)
}
