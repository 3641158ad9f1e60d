package quad

import "fmt"

// Field names one of the stored columns an equality predicate applies
// to. Flavor is the implicit fifth column partitioning the object index
// by kind.
type Field byte

const (
	FieldContext Field = iota + 1
	FieldSubject
	FieldPredicate
	FieldObject
	FieldFlavor
)

func (f Field) String() string {
	switch f {
	case FieldContext:
		return "context"
	case FieldSubject:
		return "subject"
	case FieldPredicate:
		return "predicate"
	case FieldObject:
		return "object"
	case FieldFlavor:
		return "flavor"
	default:
		return "unknown"
	}
}

// Predicate is a single equality constraint: the named field must equal
// Key. For term fields Key is the per-position term hash; for
// FieldFlavor it is the flavor value itself.
type Predicate struct {
	Field Field
	Key   uint64
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s=%d", p.Field, p.Key)
}

// Lookup is a compiled pattern: a pure conjunction (AND) of equality
// predicates. Result correctness never depends on the order the
// executor evaluates them in. An empty conjunction matches every stored
// quadruple.
type Lookup struct {
	Shape      Shape
	Predicates []Predicate
}

// Matches reports whether a stored row satisfies every predicate in the
// conjunction. Executors that scan rather than index (and the planner
// tests) evaluate lookups with this.
func (l Lookup) Matches(r Row) bool {
	for _, p := range l.Predicates {
		var key uint64
		switch p.Field {
		case FieldContext:
			key = r.ContextKey
		case FieldSubject:
			key = r.SubjectKey
		case FieldPredicate:
			key = r.PredicateKey
		case FieldObject:
			key = r.ObjectKey
		case FieldFlavor:
			key = uint64(r.Flavor)
		default:
			return false
		}
		if key != p.Key {
			return false
		}
	}
	return true
}

// Compile maps the pattern to its lookup descriptor. Each of the 16
// shapes declares its predicate set explicitly; every object-bound
// shape adds the mandatory flavor predicate, because a resource and a
// literal can share an identical string form and would otherwise
// collide under the per-position hash.
func (p *Pattern) Compile() Lookup {
	obj, flavor := p.Object()

	switch p.Shape() {
	case ShapeAll:
		return Lookup{Shape: ShapeAll}

	case ShapeC:
		return Lookup{Shape: ShapeC, Predicates: []Predicate{
			{FieldContext, TermKey(p.context)},
		}}

	case ShapeS:
		return Lookup{Shape: ShapeS, Predicates: []Predicate{
			{FieldSubject, TermKey(p.subject)},
		}}

	case ShapeP:
		return Lookup{Shape: ShapeP, Predicates: []Predicate{
			{FieldPredicate, TermKey(p.predicate)},
		}}

	case ShapeO:
		return Lookup{Shape: ShapeO, Predicates: []Predicate{
			{FieldObject, TermKey(obj)},
			{FieldFlavor, uint64(flavor)},
		}}

	case ShapeCS:
		return Lookup{Shape: ShapeCS, Predicates: []Predicate{
			{FieldContext, TermKey(p.context)},
			{FieldSubject, TermKey(p.subject)},
		}}

	case ShapeCP:
		return Lookup{Shape: ShapeCP, Predicates: []Predicate{
			{FieldContext, TermKey(p.context)},
			{FieldPredicate, TermKey(p.predicate)},
		}}

	case ShapeCO:
		return Lookup{Shape: ShapeCO, Predicates: []Predicate{
			{FieldContext, TermKey(p.context)},
			{FieldObject, TermKey(obj)},
			{FieldFlavor, uint64(flavor)},
		}}

	case ShapeSP:
		return Lookup{Shape: ShapeSP, Predicates: []Predicate{
			{FieldSubject, TermKey(p.subject)},
			{FieldPredicate, TermKey(p.predicate)},
		}}

	case ShapeSO:
		return Lookup{Shape: ShapeSO, Predicates: []Predicate{
			{FieldSubject, TermKey(p.subject)},
			{FieldObject, TermKey(obj)},
			{FieldFlavor, uint64(flavor)},
		}}

	case ShapePO:
		return Lookup{Shape: ShapePO, Predicates: []Predicate{
			{FieldPredicate, TermKey(p.predicate)},
			{FieldObject, TermKey(obj)},
			{FieldFlavor, uint64(flavor)},
		}}

	case ShapeCSP:
		return Lookup{Shape: ShapeCSP, Predicates: []Predicate{
			{FieldContext, TermKey(p.context)},
			{FieldSubject, TermKey(p.subject)},
			{FieldPredicate, TermKey(p.predicate)},
		}}

	case ShapeCSO:
		return Lookup{Shape: ShapeCSO, Predicates: []Predicate{
			{FieldContext, TermKey(p.context)},
			{FieldSubject, TermKey(p.subject)},
			{FieldObject, TermKey(obj)},
			{FieldFlavor, uint64(flavor)},
		}}

	case ShapeCPO:
		return Lookup{Shape: ShapeCPO, Predicates: []Predicate{
			{FieldContext, TermKey(p.context)},
			{FieldPredicate, TermKey(p.predicate)},
			{FieldObject, TermKey(obj)},
			{FieldFlavor, uint64(flavor)},
		}}

	case ShapeSPO:
		return Lookup{Shape: ShapeSPO, Predicates: []Predicate{
			{FieldSubject, TermKey(p.subject)},
			{FieldPredicate, TermKey(p.predicate)},
			{FieldObject, TermKey(obj)},
			{FieldFlavor, uint64(flavor)},
		}}

	case ShapeCSPO:
		return Lookup{Shape: ShapeCSPO, Predicates: []Predicate{
			{FieldContext, TermKey(p.context)},
			{FieldSubject, TermKey(p.subject)},
			{FieldPredicate, TermKey(p.predicate)},
			{FieldObject, TermKey(obj)},
			{FieldFlavor, uint64(flavor)},
		}}

	default:
		// Shape is a closed set; unreachable.
		return Lookup{Shape: ShapeAll}
	}
}
