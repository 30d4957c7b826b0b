// Package graph decodes write payloads whose relations are expressed as
// natural-key objects and resolves them to row ids.
//
// A write runs in two phases. Decode is pure: it checks the payload against
// a Schema and returns a Document or a *ValidationError, touching nothing.
// Resolve runs inside the caller's transaction and turns every natural key
// present in the Document into an id, by strict lookup or get-or-create.
package graph

type ScalarType int

const (
	String ScalarType = iota
	Text
	DateTime
	Int
)

// Scalar is a flat payload field. Rules is a validator tag applied to the
// decoded value, e.g. "max=50".
type Scalar struct {
	Name     string
	Type     ScalarType
	Required bool
	Nullable bool
	Rules    string
}

type Strategy int

const (
	// StrictLookup fails with a reference error when the key is unknown.
	StrictLookup Strategy = iota
	// GetOrCreate creates the target when the key is unknown.
	GetOrCreate
)

// Relation is a payload field holding {Key: value} or a list of those.
// Target names the resolver registered on the Assembler.
type Relation struct {
	Field    string
	Target   string
	Key      string
	KeyRules string
	Strategy Strategy
	Many     bool
	Required bool
	Nullable bool
}

// Schema describes one writable resource. ReadOnly keys are accepted and
// dropped so that a client may send back what it read.
type Schema struct {
	Name      string
	Scalars   []Scalar
	Relations []Relation
	ReadOnly  []string
}

func (s *Schema) scalar(name string) (Scalar, bool) {
	for _, f := range s.Scalars {
		if f.Name == name {
			return f, true
		}
	}
	return Scalar{}, false
}

func (s *Schema) relation(name string) (Relation, bool) {
	for _, r := range s.Relations {
		if r.Field == name {
			return r, true
		}
	}
	return Relation{}, false
}

func (s *Schema) readOnly(name string) bool {
	for _, k := range s.ReadOnly {
		if k == name {
			return true
		}
	}
	return false
}

// Mode selects which required-field rules apply.
type Mode int

const (
	Create Mode = iota
	FullUpdate
	PartialUpdate
)

func (m Mode) requiresAll() bool {
	return m == Create || m == FullUpdate
}
