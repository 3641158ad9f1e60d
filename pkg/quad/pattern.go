package quad

import (
	"strings"

	"github.com/aleksaelezovic/quadstore/pkg/rdf"
)

// Pattern is a partially bound quadruple used to select or delete
// matching quadruples. Each position is either bound to a concrete term
// or left as a wildcard. The object position is bound as *either* a
// resource *or* a literal; binding one clears the other, so a pattern
// carrying both kinds is unrepresentable.
//
// Binding a position with a nil term leaves it unbound, which makes
// "insufficient pattern" removals degrade to smaller shapes (and, when
// nothing is bound, to no-ops) instead of erroring.
type Pattern struct {
	context   *rdf.Resource
	subject   *rdf.Resource
	predicate *rdf.Resource
	objRes    *rdf.Resource
	objLit    *rdf.Literal
}

// NewPattern returns the empty pattern: no positions bound, matching
// every stored quadruple.
func NewPattern() *Pattern {
	return &Pattern{}
}

func (p *Pattern) WithContext(context *rdf.Resource) *Pattern {
	p.context = context
	return p
}

func (p *Pattern) WithSubject(subject *rdf.Resource) *Pattern {
	p.subject = subject
	return p
}

func (p *Pattern) WithPredicate(predicate *rdf.Resource) *Pattern {
	p.predicate = predicate
	return p
}

// WithObjectResource binds the object position as a resource,
// displacing any literal binding.
func (p *Pattern) WithObjectResource(object *rdf.Resource) *Pattern {
	p.objRes = object
	p.objLit = nil
	return p
}

// WithObjectLiteral binds the object position as a literal, displacing
// any resource binding.
func (p *Pattern) WithObjectLiteral(object *rdf.Literal) *Pattern {
	p.objLit = object
	p.objRes = nil
	return p
}

func (p *Pattern) Context() *rdf.Resource   { return p.context }
func (p *Pattern) Subject() *rdf.Resource   { return p.subject }
func (p *Pattern) Predicate() *rdf.Resource { return p.predicate }

// Object returns the bound object term and its flavor, or (nil, 0)
// when the object position is a wildcard.
func (p *Pattern) Object() (rdf.Term, Flavor) {
	if p.objRes != nil {
		return p.objRes, FlavorResource
	}
	if p.objLit != nil {
		return p.objLit, FlavorLiteral
	}
	return nil, 0
}

// Empty reports whether no position is bound.
func (p *Pattern) Empty() bool {
	return p.Shape() == ShapeAll
}

// PatternFor builds the pattern that matches exactly q's positions.
func PatternFor(q *Quadruple) *Pattern {
	p := NewPattern().
		WithContext(q.Context).
		WithSubject(q.Subject).
		WithPredicate(q.Predicate)
	switch obj := q.Object.(type) {
	case *rdf.Resource:
		p.WithObjectResource(obj)
	case *rdf.Literal:
		p.WithObjectLiteral(obj)
	}
	return p
}

// Shape is the canonical case label of a pattern: one variant per
// subset of bound positions in {Context, Subject, Predicate, Object}.
// ShapeAll is the empty subset (full scan). The set is closed so the
// planner's case table is exhaustively checked by the compiler.
type Shape byte

const (
	ShapeAll Shape = iota
	ShapeC
	ShapeS
	ShapeP
	ShapeO
	ShapeCS
	ShapeCP
	ShapeCO
	ShapeSP
	ShapeSO
	ShapePO
	ShapeCSP
	ShapeCSO
	ShapeCPO
	ShapeSPO
	ShapeCSPO
)

// Shape classifies p by its bound positions.
func (p *Pattern) Shape() Shape {
	cBound := p.context != nil
	sBound := p.subject != nil
	pBound := p.predicate != nil
	oBound := p.objRes != nil || p.objLit != nil

	switch {
	case cBound && sBound && pBound && oBound:
		return ShapeCSPO
	case cBound && sBound && pBound:
		return ShapeCSP
	case cBound && sBound && oBound:
		return ShapeCSO
	case cBound && pBound && oBound:
		return ShapeCPO
	case sBound && pBound && oBound:
		return ShapeSPO
	case cBound && sBound:
		return ShapeCS
	case cBound && pBound:
		return ShapeCP
	case cBound && oBound:
		return ShapeCO
	case sBound && pBound:
		return ShapeSP
	case sBound && oBound:
		return ShapeSO
	case pBound && oBound:
		return ShapePO
	case cBound:
		return ShapeC
	case sBound:
		return ShapeS
	case pBound:
		return ShapeP
	case oBound:
		return ShapeO
	default:
		return ShapeAll
	}
}

// String returns the flag-letter label: C, S, P per bound position, and
// O or L for an object bound as resource or literal. Empty string for
// the full scan.
func (p *Pattern) String() string {
	var b strings.Builder
	if p.context != nil {
		b.WriteByte('C')
	}
	if p.subject != nil {
		b.WriteByte('S')
	}
	if p.predicate != nil {
		b.WriteByte('P')
	}
	if p.objRes != nil {
		b.WriteByte('O')
	}
	if p.objLit != nil {
		b.WriteByte('L')
	}
	return b.String()
}
