/*
Package mprlist implements a list of MPRs: named forwarding hints ranked
by preference, together with their exact TLV wire encoding.

We implement:

1. Delegation, a (preference, name) pair with a total order: preference
ascending, then the name's canonical order.

2. List, a compact container of delegations with a per-list sortedness
mode. A sorted list keeps its entries in non-decreasing delegation order
across every mutation; an unsorted list preserves insertion order, which
is what you want when extracting the i-th delegation from received wire
content verbatim.

3. The wire codec. A list encodes into nested TLV under either the
Content or the MPRList outer type, and decodes back with strict
structural validation.

# Technical Details

**Container.**
Delegations live in a plain slice, not a search tree. Lists are expected
to hold fewer than about seven entries, so shifting on insert and erase
is cheaper than tree bookkeeping, and a slice is the only structure that
can also represent the unsorted mode.

**Conflict resolution.**
Insert takes a policy for duplicate names: InsertReplace drops all
existing entries with the name first, InsertAppend keeps duplicates, and
InsertSkip refuses the new entry. Decoding bypasses these policies and
reproduces the wire content as-is.

## Wire format

	List       ::= (Content | MPRList) TLV-LENGTH Delegation+
	Delegation ::= Delegation-TYPE TLV-LENGTH Preference Name
	Preference ::= Preference-TYPE TLV-LENGTH NonNegativeInteger

Preference must precede Name inside each delegation, both are mandatory,
and a list with zero delegations is invalid in both directions.
*/
package mprlist
