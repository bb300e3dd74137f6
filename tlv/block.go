package tlv

// Block is a parsed TLV element: a type number, the raw value bytes, and,
// after Parse, the child elements carved out of the value.
type Block struct {
	typ      uint32
	value    []byte
	elements []Block
	parsed   bool
}

// New makes a block from a type number and raw value bytes. The value is
// borrowed, not copied.
func New(typ uint32, value []byte) *Block {
	return &Block{typ: typ, value: value}
}

// FromBytes parses a single TLV element occupying the whole of wire.
// Trailing bytes after the element are a framing error.
func FromBytes(wire []byte) (*Block, error) {
	d := makeDecoder(wire)
	typ, length, err := d.typeLength()
	if err != nil {
		return nil, err
	}
	value, err := d.raw(length)
	if err != nil {
		return nil, err
	}
	if !d.empty() {
		return nil, errf(nil, "%d trailing bytes after TLV element", len(wire)-d.off())
	}
	return &Block{typ: typ, value: value}, nil
}

func (b *Block) Type() uint32 {
	return b.typ
}

// Value returns the raw value bytes. The slice is a view into the wire
// buffer and must not be modified.
func (b *Block) Value() []byte {
	return b.value
}

// Parse splits the value into child elements. Parsing is idempotent: a
// second call is a no-op. The children's values alias the parent's value.
func (b *Block) Parse() error {
	if b.parsed {
		return nil
	}
	d := makeDecoder(b.value)
	var elements []Block
	for !d.empty() {
		typ, length, err := d.typeLength()
		if err != nil {
			return err
		}
		value, err := d.raw(length)
		if err != nil {
			return err
		}
		elements = append(elements, Block{typ: typ, value: value})
	}
	b.elements = elements
	b.parsed = true
	return nil
}

// Elements returns the child elements produced by Parse, nil before it.
func (b *Block) Elements() []Block {
	return b.elements
}
