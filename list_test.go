package mprlist

import (
	"errors"
	"testing"

	"github.com/openndn/mprlist/name"
)

func entries(l *List) []Delegation {
	var out []Delegation
	for d := range l.All() {
		out = append(out, d)
	}
	return out
}

func checkEntries(t *testing.T, l *List, want ...Delegation) {
	t.Helper()
	got := entries(l)
	if len(got) != len(want) {
		t.Fatalf("list = %s, wanted %s", l, FromDelegations(want...))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("list[%d] = %s, wanted %s (full list %s)", i, got[i], want[i], l)
		}
	}
}

func mustInsert(t *testing.T, l *List, preference uint64, uri string, onConflict InsertConflict) bool {
	t.Helper()
	added, err := l.Insert(preference, name.MustParse(uri), onConflict)
	if err != nil {
		t.Fatalf("Insert(%d, %s): %v", preference, uri, err)
	}
	return added
}

func TestNew_Empty(t *testing.T) {
	l := New()
	if !l.IsSorted() || !l.Empty() || l.Len() != 0 {
		t.Fatalf("New() = (sorted=%v, empty=%v, len=%d), wanted (true, true, 0)", l.IsSorted(), l.Empty(), l.Len())
	}
}

func TestFromDelegations_ReplacesDuplicates(t *testing.T) {
	l := FromDelegations(del(10, "/a"), del(5, "/b"), del(7, "/a"))
	if !l.IsSorted() {
		t.Fatalf("IsSorted = false, wanted true")
	}
	checkEntries(t, l, del(5, "/b"), del(7, "/a"))
}

func TestInsert_Replace(t *testing.T) {
	l := New()
	mustInsert(t, l, 10, "/a", InsertReplace)
	mustInsert(t, l, 20, "/b", InsertReplace)
	if added := mustInsert(t, l, 30, "/a", InsertReplace); !added {
		t.Fatalf("InsertReplace reported not added")
	}
	checkEntries(t, l, del(20, "/b"), del(30, "/a"))
}

func TestInsert_Append(t *testing.T) {
	l := New()
	mustInsert(t, l, 10, "/a", InsertAppend)
	mustInsert(t, l, 5, "/a", InsertAppend)
	checkEntries(t, l, del(5, "/a"), del(10, "/a"))
}

func TestInsert_Skip(t *testing.T) {
	l := New()
	mustInsert(t, l, 10, "/a", InsertSkip)
	if added := mustInsert(t, l, 5, "/a", InsertSkip); added {
		t.Fatalf("InsertSkip added a duplicate name")
	}
	checkEntries(t, l, del(10, "/a"))
}

func TestInsert_UnknownConflict(t *testing.T) {
	l := New()
	_, err := l.Insert(1, name.MustParse("/a"), InsertConflict(42))
	if !errors.Is(err, ErrUnknownConflict) {
		t.Fatalf("err = %v, wanted ErrUnknownConflict", err)
	}
	if !l.Empty() {
		t.Fatalf("list modified by failed insert: %s", l)
	}
}

func TestInsert_SortedPlacesAfterEqualRank(t *testing.T) {
	l := New()
	mustInsert(t, l, 1, "/a", InsertAppend)
	mustInsert(t, l, 1, "/a", InsertAppend)
	mustInsert(t, l, 1, "/a", InsertAppend)
	checkEntries(t, l, del(1, "/a"), del(1, "/a"), del(1, "/a"))
}

func TestInsert_UnsortedAppends(t *testing.T) {
	l := NewUnsorted()
	mustInsert(t, l, 10, "/a", InsertAppend)
	mustInsert(t, l, 5, "/b", InsertAppend)
	if l.IsSorted() {
		t.Fatalf("IsSorted = true, wanted false")
	}
	checkEntries(t, l, del(10, "/a"), del(5, "/b"))
}

func TestErase_Forms(t *testing.T) {
	build := func() *List {
		l := New()
		mustInsert(t, l, 10, "/a", InsertAppend)
		mustInsert(t, l, 20, "/a", InsertAppend)
		mustInsert(t, l, 30, "/b", InsertAppend)
		return l
	}

	t.Run("by preference and name", func(t *testing.T) {
		l := build()
		if n := l.Erase(20, name.MustParse("/a")); n != 1 {
			t.Fatalf("Erase = %d, wanted 1", n)
		}
		checkEntries(t, l, del(10, "/a"), del(30, "/b"))
	})

	t.Run("by delegation", func(t *testing.T) {
		l := build()
		if n := l.EraseDelegation(del(10, "/a")); n != 1 {
			t.Fatalf("EraseDelegation = %d, wanted 1", n)
		}
		checkEntries(t, l, del(20, "/a"), del(30, "/b"))
	})

	t.Run("by name", func(t *testing.T) {
		l := build()
		if n := l.EraseName(name.MustParse("/a")); n != 2 {
			t.Fatalf("EraseName = %d, wanted 2", n)
		}
		checkEntries(t, l, del(30, "/b"))
	})

	t.Run("no match", func(t *testing.T) {
		l := build()
		if n := l.Erase(10, name.MustParse("/z")); n != 0 {
			t.Fatalf("Erase = %d, wanted 0", n)
		}
		if n := l.Erase(99, name.MustParse("/a")); n != 0 {
			t.Fatalf("Erase with wrong preference = %d, wanted 0", n)
		}
		checkEntries(t, l, del(10, "/a"), del(20, "/a"), del(30, "/b"))
	})
}

func TestSort_UnsortedScenario(t *testing.T) {
	l := NewUnsorted()
	mustInsert(t, l, 10, "/a", InsertAppend)
	mustInsert(t, l, 5, "/b", InsertAppend)
	if l.IsSorted() {
		t.Fatalf("IsSorted = true before Sort, wanted false")
	}

	l.Sort()
	if !l.IsSorted() {
		t.Fatalf("IsSorted = false after Sort, wanted true")
	}
	checkEntries(t, l, del(5, "/b"), del(10, "/a"))

	// Idempotent.
	l.Sort()
	checkEntries(t, l, del(5, "/b"), del(10, "/a"))
}

func TestSort_TiesKeepOriginalOrder(t *testing.T) {
	l := NewUnsorted()
	mustInsert(t, l, 1, "/a", InsertAppend)
	mustInsert(t, l, 2, "/x", InsertAppend)
	mustInsert(t, l, 1, "/a", InsertAppend)
	l.Sort()
	checkEntries(t, l, del(1, "/a"), del(1, "/a"), del(2, "/x"))
	for i := 0; i+1 < l.Len(); i++ {
		if l.At(i).Compare(l.At(i+1)) > 0 {
			t.Fatalf("list not in non-decreasing order at %d: %s", i, l)
		}
	}
}

func TestAt_Get(t *testing.T) {
	l := FromDelegations(del(5, "/b"), del(10, "/a"))
	if got := l.At(0); !got.Equal(del(5, "/b")) {
		t.Fatalf("At(0) = %s, wanted 5,/b", got)
	}
	if _, err := l.Get(1); err != nil {
		t.Fatalf("Get(1): %v", err)
	}
	if _, err := l.Get(2); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Get(2) err = %v, wanted ErrOutOfRange", err)
	}
	if _, err := l.Get(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Get(-1) err = %v, wanted ErrOutOfRange", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("At(2) did not panic")
		}
	}()
	l.At(2)
}

func TestEqual_OrderSensitive(t *testing.T) {
	a := NewUnsorted()
	mustInsert(t, a, 10, "/a", InsertAppend)
	mustInsert(t, a, 5, "/b", InsertAppend)

	b := NewUnsorted()
	mustInsert(t, b, 5, "/b", InsertAppend)
	mustInsert(t, b, 10, "/a", InsertAppend)

	if a.Equal(b) {
		t.Fatalf("lists with different order compare equal")
	}
	b.Sort()
	a.Sort()
	if !a.Equal(b) {
		t.Fatalf("sorted lists compare unequal: %s vs %s", a, b)
	}
}

func TestList_String(t *testing.T) {
	l := FromDelegations(del(10, "/a"), del(5, "/b"))
	if got := l.String(); got != "[5,/b,10,/a]" {
		t.Fatalf("String = %q, wanted \"[5,/b,10,/a]\"", got)
	}
}
