package name

import (
	"bytes"
	"testing"

	"github.com/openndn/mprlist/tlv"
)

func TestParse_String(t *testing.T) {
	tests := []struct {
		uri  string
		want string
		size int
	}{
		{"/", "/", 0},
		{"", "/", 0},
		{"/a", "/a", 1},
		{"/a/b/c", "/a/b/c", 3},
		{"//a//b/", "/a/b", 2},
		{"ndn:/a/b", "/a/b", 2},
		{"/hello-world/v2", "/hello-world/v2", 2},
		{"/%00%01", "/%00%01", 1},
		{"/a%2Fb", "/a%2Fb", 1},
		{"/...", "/...", 1},     // empty component
		{"/....", "/....", 1},   // single-period component
		{"/.....", "/.....", 1}, // double-period component
	}
	for _, tt := range tests {
		n, err := Parse(tt.uri)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.uri, err)
		}
		if n.Len() != tt.size {
			t.Errorf("Parse(%q).Len() = %d, wanted %d", tt.uri, n.Len(), tt.size)
		}
		if got := n.String(); got != tt.want {
			t.Errorf("Parse(%q).String() = %q, wanted %q", tt.uri, got, tt.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, uri := range []string{"/a%", "/a%2", "/a%zz", "/.", "/.."} {
		if _, err := Parse(uri); err == nil {
			t.Errorf("Parse(%q) succeeded, wanted error", uri)
		}
	}
}

func TestComponent_EscapedString(t *testing.T) {
	c := Generic("a b/c")
	got := c.String()
	if got != "a%20b%2Fc" {
		t.Fatalf("String = %q, wanted \"a%%20b%%2Fc\"", got)
	}
	back, err := parseComponent(got)
	if err != nil {
		t.Fatalf("parseComponent: %v", err)
	}
	if !back.Equal(c) {
		t.Fatalf("round-trip = %q, wanted %q", back.Value(), c.Value())
	}
}

func TestCompare_CanonicalOrder(t *testing.T) {
	// Increasing canonical order: prefix first, then shorter component,
	// then lexicographic, then higher component type.
	ordered := []Name{
		{},
		MustParse("/a"),
		MustParse("/a/b"),
		MustParse("/a/c"),
		MustParse("/b"),
		MustParse("/aa"),
		{NewComponent(200, []byte("b"))},
	}
	for i, a := range ordered {
		for j, b := range ordered {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got := a.Compare(b); got != want {
				t.Errorf("Compare(%s, %s) = %d, wanted %d", a, b, got, want)
			}
			if (a.Compare(b) == 0) != a.Equal(b) {
				t.Errorf("Equal(%s, %s) inconsistent with Compare", a, b)
			}
		}
	}
}

func TestWire_RoundTrip(t *testing.T) {
	for _, uri := range []string{"/", "/a", "/a/b/c", "/%00%FF/x"} {
		n := MustParse(uri)
		wire := n.Bytes()
		back, err := FromBytes(wire)
		if err != nil {
			t.Fatalf("FromBytes(%q): %v", uri, err)
		}
		if !back.Equal(n) {
			t.Fatalf("round-trip of %q = %s, wanted %s", uri, back, n)
		}
	}
}

func TestWire_KnownBytes(t *testing.T) {
	n := MustParse("/a/b")
	want := []byte{0x07, 0x06, 0x08, 0x01, 'a', 0x08, 0x01, 'b'}
	if got := n.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("Bytes = %x, wanted %x", got, want)
	}
}

func TestFromBlock_WrongType(t *testing.T) {
	b := tlv.New(tlv.TypeContent, nil)
	if _, err := FromBlock(b); err == nil {
		t.Fatalf("FromBlock succeeded, wanted error for non-Name block")
	}
}

func TestFromBlock_CopiesValues(t *testing.T) {
	wire := []byte{0x07, 0x03, 0x08, 0x01, 'a'}
	n, err := FromBytes(wire)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	wire[4] = 'z'
	if n.String() != "/a" {
		t.Fatalf("decoded name aliases the wire buffer: %s", n)
	}
}
