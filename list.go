package mprlist

import (
	"iter"
	"sort"
	"strings"

	"github.com/openndn/mprlist/name"
)

// InsertConflict selects what Insert does when the list already holds a
// delegation with the same name.
type InsertConflict int

const (
	// InsertReplace removes every existing delegation with the same name,
	// then adds the new one.
	InsertReplace InsertConflict = iota

	// InsertAppend adds the new delegation unconditionally, keeping
	// duplicates. The Link specification recommends against this.
	InsertAppend

	// InsertSkip leaves the list untouched if the name is already present.
	InsertSkip
)

// List is an ordered collection of delegations. It is either sorted —
// entries kept in non-decreasing delegation order across every mutation —
// or unsorted, preserving whatever order inserts and decoding produced.
//
// A List is not safe for concurrent use; callers sharing one across
// goroutines must serialize access themselves.
type List struct {
	sorted bool
	dels   []Delegation
}

// New returns an empty sorted list.
func New() *List {
	return &List{sorted: true}
}

// NewUnsorted returns an empty list that appends on insert instead of
// maintaining sorted order.
func NewUnsorted() *List {
	return &List{sorted: false}
}

// FromDelegations builds a sorted list by inserting each delegation in
// order with InsertReplace semantics: a later duplicate name overrides an
// earlier one.
func FromDelegations(dels ...Delegation) *List {
	l := New()
	for _, d := range dels {
		l.InsertDelegation(d, InsertReplace)
	}
	return l
}

// IsSorted reports whether the list maintains sorted order on insert.
func (l *List) IsSorted() bool {
	return l.sorted
}

func (l *List) Len() int {
	return len(l.dels)
}

func (l *List) Empty() bool {
	return len(l.dels) == 0
}

// At returns the i-th delegation. The index must satisfy i < Len();
// violating the precondition panics.
func (l *List) At(i int) Delegation {
	return l.dels[i]
}

// Get returns the i-th delegation, or ErrOutOfRange if i is out of
// bounds.
func (l *List) Get(i int) (Delegation, error) {
	if i < 0 || i >= len(l.dels) {
		return Delegation{}, ErrOutOfRange
	}
	return l.dels[i], nil
}

// All iterates over the delegations in list order. The iteration reads
// the live storage; mutating the list mid-iteration invalidates it.
func (l *List) All() iter.Seq[Delegation] {
	return func(yield func(Delegation) bool) {
		for _, d := range l.dels {
			if !yield(d) {
				return
			}
		}
	}
}

// Equal compares two lists entry by entry. Order matters: two lists with
// the same delegations in different order are unequal.
func (l *List) Equal(other *List) bool {
	if len(l.dels) != len(other.dels) {
		return false
	}
	for i := range l.dels {
		if !l.dels[i].Equal(other.dels[i]) {
			return false
		}
	}
	return true
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, d := range l.dels {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(d.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Insert adds a delegation, resolving a duplicate name according to
// onConflict. It reports whether an entry was added; InsertSkip is the
// only policy that can report false. An unrecognized policy value fails
// with ErrUnknownConflict.
func (l *List) Insert(preference uint64, nm name.Name, onConflict InsertConflict) (bool, error) {
	switch onConflict {
	case InsertReplace:
		l.eraseImpl(false, 0, nm)
		l.insertImpl(preference, nm)
		return true, nil
	case InsertAppend:
		l.insertImpl(preference, nm)
		return true, nil
	case InsertSkip:
		for _, d := range l.dels {
			if d.Name.Equal(nm) {
				return false, nil
			}
		}
		l.insertImpl(preference, nm)
		return true, nil
	default:
		return false, ErrUnknownConflict
	}
}

// InsertDelegation is Insert taking the pair as a Delegation value.
func (l *List) InsertDelegation(d Delegation, onConflict InsertConflict) (bool, error) {
	return l.Insert(d.Preference, d.Name, onConflict)
}

// Erase removes every delegation matching both preference and name,
// returning the count removed.
func (l *List) Erase(preference uint64, nm name.Name) int {
	return l.eraseImpl(true, preference, nm)
}

// EraseDelegation removes every delegation matching d's preference and
// name, returning the count removed.
func (l *List) EraseDelegation(d Delegation) int {
	return l.eraseImpl(true, d.Preference, d.Name)
}

// EraseName removes every delegation with the given name regardless of
// preference, returning the count removed.
func (l *List) EraseName(nm name.Name) int {
	return l.eraseImpl(false, 0, nm)
}

// Sort turns an unsorted list into a sorted one; a sorted list is left
// alone. Entries are replayed through sorted insertion in their original
// order, so rank ties keep their relative order.
func (l *List) Sort() {
	if l.sorted {
		return
	}
	dels := l.dels
	l.dels = nil
	l.sorted = true
	for _, d := range dels {
		l.insertImpl(d.Preference, d.Name)
	}
}

// insertImpl is the raw insertion used by Insert, Sort and the decoder:
// no conflict checking. In sorted mode the entry goes after all existing
// entries that compare less than or equal to it.
func (l *List) insertImpl(preference uint64, nm name.Name) {
	d := Delegation{Preference: preference, Name: nm}
	if !l.sorted {
		l.dels = append(l.dels, d)
		return
	}
	pos := sort.Search(len(l.dels), func(i int) bool {
		return l.dels[i].Compare(d) > 0
	})
	l.dels = append(l.dels, Delegation{})
	copy(l.dels[pos+1:], l.dels[pos:])
	l.dels[pos] = d
}

func (l *List) eraseImpl(matchPreference bool, preference uint64, nm name.Name) int {
	kept := l.dels[:0]
	for _, d := range l.dels {
		if (!matchPreference || d.Preference == preference) && d.Name.Equal(nm) {
			continue
		}
		kept = append(kept, d)
	}
	erased := len(l.dels) - len(kept)
	l.dels = kept
	return erased
}
