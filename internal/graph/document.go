package graph

import "time"

// Value is a decoded scalar.
type Value struct {
	Null bool
	Str  string
	Time time.Time
	Int  int64
}

// Document is a validated payload. Only fields present in the request are
// recorded; absent fields must be left untouched by the caller.
type Document struct {
	scalars map[string]Value
	refs    map[string][]string
}

func newDocument() *Document {
	return &Document{
		scalars: make(map[string]Value),
		refs:    make(map[string][]string),
	}
}

// Has reports whether field was present in the payload.
func (d *Document) Has(field string) bool {
	if _, ok := d.scalars[field]; ok {
		return true
	}
	_, ok := d.refs[field]
	return ok
}

func (d *Document) Scalar(field string) (Value, bool) {
	v, ok := d.scalars[field]
	return v, ok
}

// Keys returns the natural keys sent for a relation. A to-one relation sent
// as null yields an empty slice with ok == true.
func (d *Document) Keys(field string) ([]string, bool) {
	k, ok := d.refs[field]
	return k, ok
}

// Resolved holds the ids for every relation present in a Document.
type Resolved struct {
	ids map[string][]uint64
}

// One returns the id of a to-one relation. ok is false when the relation was
// absent from the payload; id is zero when it was sent as null.
func (r *Resolved) One(field string) (id uint64, ok bool) {
	ids, ok := r.ids[field]
	if !ok || len(ids) == 0 {
		return 0, ok
	}
	return ids[0], true
}

// Many returns the de-duplicated ids of a to-many relation.
func (r *Resolved) Many(field string) ([]uint64, bool) {
	ids, ok := r.ids[field]
	return ids, ok
}
