// Package hintdb persists encoded MPR lists in a Bolt database, keyed by
// the wire encoding of the object name they apply to. It backs the
// mprtool command; the in-memory list types in the parent package know
// nothing about it.
package hintdb

import (
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"

	"github.com/openndn/mprlist"
	"github.com/openndn/mprlist/name"
	"github.com/openndn/mprlist/tlv"
)

var bucketHints = []byte("hints")

// ErrNotFound is returned by Get and Delete when no list is stored under
// the given name.
var ErrNotFound = errors.New("hintdb: no MPR list stored for name")

// record is the stored value: the list's wire bytes plus bookkeeping.
// Wire bytes rather than a decoded form, so the stored data stays
// bit-exact with what was put in.
type record struct {
	Wire      []byte    `msgpack:"w"`
	Sorted    bool      `msgpack:"s"`
	UpdatedAt time.Time `msgpack:"t"`
}

// DB is a handle to an open hint database. It is safe for concurrent
// use; Bolt serializes writers internally.
type DB struct {
	bolt *bbolt.DB
}

// Open opens or creates the database file at path.
func Open(path string) (*DB, error) {
	bdb, err := bbolt.Open(path, 0o644, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("hintdb: %w", err)
	}
	err = bdb.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHints)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, fmt.Errorf("hintdb: %w", err)
	}
	return &DB{bolt: bdb}, nil
}

func (db *DB) Close() error {
	return db.bolt.Close()
}

// Put stores l under objName, replacing any previous list. The list is
// re-encoded under the MPRList outer type, so an empty list is rejected
// by the codec before anything is written.
func (db *DB) Put(objName name.Name, l *mprlist.List) error {
	wire, err := l.Encode(tlv.TypeMPRList)
	if err != nil {
		return err
	}
	raw, err := msgpack.Marshal(record{
		Wire:      wire,
		Sorted:    l.IsSorted(),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("hintdb: %w", err)
	}
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketHints).Put(nameKey(objName), raw)
	})
}

// nameKey is the bucket key for a name: the TLV value of its encoding,
// components only. Dropping the outer type and length keeps the prefix
// property — a name that prefixes another yields a key that prefixes the
// other's key — so bytewise key order groups names by hierarchy.
func nameKey(n name.Name) []byte {
	block, err := tlv.FromBytes(n.Bytes())
	if err != nil {
		panic(err) // a freshly encoded name always reparses
	}
	return block.Value()
}

// Get loads the list stored under objName. wantSort picks the sortedness
// mode of the decoded list, exactly as in mprlist.DecodeBytes.
func (db *DB) Get(objName name.Name, wantSort bool) (*mprlist.List, error) {
	var raw []byte
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketHints).Get(nameKey(objName))
		if v == nil {
			return ErrNotFound
		}
		raw = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	var rec record
	if err := msgpack.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("hintdb: corrupt record for %s: %w", objName, err)
	}
	l, err := mprlist.DecodeBytes(rec.Wire, wantSort)
	if err != nil {
		return nil, fmt.Errorf("hintdb: corrupt record for %s: %w", objName, err)
	}
	return l, nil
}

// Delete removes the list stored under objName. Deleting an absent name
// is ErrNotFound.
func (db *DB) Delete(objName name.Name) error {
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketHints)
		key := nameKey(objName)
		if b.Get(key) == nil {
			return ErrNotFound
		}
		return b.Delete(key)
	})
}

// Names returns every stored object name in key order: prefixes first,
// then bytewise by component encoding.
func (db *DB) Names() ([]name.Name, error) {
	var names []name.Name
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketHints).ForEach(func(k, v []byte) error {
			n, err := name.FromBlock(tlv.New(tlv.TypeName, k))
			if err != nil {
				return fmt.Errorf("hintdb: corrupt key %x: %w", k, err)
			}
			names = append(names, n)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
