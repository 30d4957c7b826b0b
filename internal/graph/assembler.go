package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	apperrors "event-rental/pkg/errors"
)

// VarValidator validates one value against a validator tag.
type VarValidator interface {
	Var(field string, value interface{}, tag string) error
}

// LookupFunc maps a natural key to a row id inside tx. A strict lookup
// returns apperrors.ErrNotFound on a miss.
type LookupFunc func(ctx context.Context, tx pgx.Tx, key string) (uint64, error)

// Assembler decodes payloads and resolves their relations through the
// registered lookups.
type Assembler struct {
	validate VarValidator
	lookups  map[string]LookupFunc
	creators map[string]LookupFunc
}

func NewAssembler(validate VarValidator) *Assembler {
	return &Assembler{
		validate: validate,
		lookups:  make(map[string]LookupFunc),
		creators: make(map[string]LookupFunc),
	}
}

// RegisterLookup installs the strict resolver for target.
func (a *Assembler) RegisterLookup(target string, fn LookupFunc) {
	a.lookups[target] = fn
}

// RegisterGetOrCreate installs the get-or-create resolver for target.
func (a *Assembler) RegisterGetOrCreate(target string, fn LookupFunc) {
	a.creators[target] = fn
}

func (a *Assembler) resolverFor(rel Relation) (LookupFunc, error) {
	var (
		fn LookupFunc
		ok bool
	)
	switch rel.Strategy {
	case StrictLookup:
		fn, ok = a.lookups[rel.Target]
	case GetOrCreate:
		fn, ok = a.creators[rel.Target]
	}
	if !ok {
		return nil, fmt.Errorf("no resolver registered for %q (strategy %d)", rel.Target, rel.Strategy)
	}
	return fn, nil
}

// Resolve turns every relation present in doc into ids. It stops at the first
// failure; the caller's transaction is expected to roll back.
func (a *Assembler) Resolve(ctx context.Context, tx pgx.Tx, schema *Schema, doc *Document) (*Resolved, error) {
	out := &Resolved{ids: make(map[string][]uint64)}

	for _, rel := range schema.Relations {
		keys, ok := doc.refs[rel.Field]
		if !ok {
			continue
		}

		fn, err := a.resolverFor(rel)
		if err != nil {
			return nil, err
		}

		ids := make([]uint64, 0, len(keys))
		seen := make(map[uint64]struct{}, len(keys))
		for _, key := range keys {
			id, err := fn(ctx, tx, key)
			if err != nil {
				if rel.Strategy == StrictLookup && errors.Is(err, apperrors.ErrNotFound) {
					return nil, &apperrors.ReferenceError{Field: rel.Field, Key: rel.Key, Value: key}
				}
				return nil, fmt.Errorf("failed to resolve %s: %w", rel.Field, err)
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		out.ids[rel.Field] = ids
	}

	return out, nil
}
