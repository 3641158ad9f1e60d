// Package quad implements the pattern-constrained quadruple store core:
// quadruple identity, pattern compilation into predicate conjunctions,
// and the mutation and selection operations that keep a persisted
// quadruple set consistent with set semantics. Physical storage is
// delegated to a pluggable Executor.
package quad

import (
	"errors"
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/aleksaelezovic/quadstore/pkg/rdf"
)

// ErrMissingTerm is returned when an operation that demands a fully
// bound quadruple is given a nil term.
var ErrMissingTerm = errors.New("missing term")

// Flavor discriminates whether a quadruple's object is a resource or a
// literal. It is stored alongside the object so lookups can filter on
// kind without re-inspecting the object's string form.
type Flavor byte

const (
	FlavorResource Flavor = 1
	FlavorLiteral  Flavor = 2
)

func (f Flavor) String() string {
	switch f {
	case FlavorResource:
		return "spo"
	case FlavorLiteral:
		return "spl"
	default:
		return "unknown"
	}
}

// Valid reports whether f is one of the two defined flavors.
func (f Flavor) Valid() bool {
	return f == FlavorResource || f == FlavorLiteral
}

// ID is the 64-bit deterministic content hash identifying a quadruple.
// It is the uniqueness key of the persisted set: inserting a quadruple
// whose ID already exists is a no-op.
type ID uint64

// ComputeID hashes the four terms' string forms joined with a single
// space, in context/subject/predicate/object order, seeded with the
// object-kind discriminant so a resource object and a literal object
// with identical string forms never share an id. Separator, order, and
// seed are part of the persisted contract: changing any of them changes
// every existing id.
func ComputeID(context, subject, predicate *rdf.Resource, object rdf.Term) ID {
	joined := context.String() + " " + subject.String() + " " + predicate.String() + " " + object.String()
	return ID(xxh3.HashStringSeed(joined, uint64(object.Kind())))
}

// TermKey computes the per-position lookup key for a single term: a
// 64-bit hash of that term's string form alone. Distinct from ID, which
// hashes the whole quadruple.
func TermKey(term rdf.Term) uint64 {
	return xxh3.HashString(term.String())
}

// Quadruple is the unit of storage: (context, subject, predicate,
// object). Context, subject, and predicate are always resources; the
// object is either a resource or a literal, recorded by Flavor.
// Quadruples are immutable; the ID is computed once at construction.
type Quadruple struct {
	Context   *rdf.Resource
	Subject   *rdf.Resource
	Predicate *rdf.Resource
	Object    rdf.Term

	id     ID
	flavor Flavor
}

// NewQuadruple constructs a fully bound quadruple. All four terms must
// be non-nil; the flavor is derived from the object's kind.
func NewQuadruple(context, subject, predicate *rdf.Resource, object rdf.Term) (*Quadruple, error) {
	if context == nil || subject == nil || predicate == nil || object == nil {
		return nil, ErrMissingTerm
	}

	var flavor Flavor
	switch object.Kind() {
	case rdf.KindResource:
		flavor = FlavorResource
	case rdf.KindLiteral:
		flavor = FlavorLiteral
	default:
		return nil, fmt.Errorf("object term kind %v has no flavor", object.Kind())
	}

	return &Quadruple{
		Context:   context,
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		id:        ComputeID(context, subject, predicate, object),
		flavor:    flavor,
	}, nil
}

// ID returns the quadruple's content hash.
func (q *Quadruple) ID() ID {
	return q.id
}

// Flavor returns the object-kind discriminant.
func (q *Quadruple) Flavor() Flavor {
	return q.flavor
}

func (q *Quadruple) String() string {
	return fmt.Sprintf("%s %s %s %s", q.Context, q.Subject, q.Predicate, q.Object)
}

// Equals compares by content id.
func (q *Quadruple) Equals(other *Quadruple) bool {
	if other == nil {
		return false
	}
	return q.id == other.id
}

// row materializes the executor representation of q.
func (q *Quadruple) row() Row {
	return Row{
		ID:           q.id,
		Flavor:       q.flavor,
		ContextKey:   TermKey(q.Context),
		SubjectKey:   TermKey(q.Subject),
		PredicateKey: TermKey(q.Predicate),
		ObjectKey:    TermKey(q.Object),
		Context:      q.Context.String(),
		Subject:      q.Subject.String(),
		Predicate:    q.Predicate.String(),
		Object:       q.Object.String(),
	}
}

// quadrupleFromRow rebuilds a quadruple from an executor row. The
// object's kind comes from the stored flavor, never from sniffing the
// object string.
func quadrupleFromRow(r Row) (*Quadruple, error) {
	var object rdf.Term
	switch r.Flavor {
	case FlavorResource:
		object = rdf.NewResource(r.Object)
	case FlavorLiteral:
		object = rdf.ParseLiteral(r.Object)
	default:
		return nil, fmt.Errorf("row %d carries invalid flavor %d", r.ID, r.Flavor)
	}

	return NewQuadruple(
		rdf.NewResource(r.Context),
		rdf.NewResource(r.Subject),
		rdf.NewResource(r.Predicate),
		object,
	)
}
