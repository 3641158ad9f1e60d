package rdf

import (
	"fmt"
	"strings"
	"time"
)

// TermKind discriminates the two kinds of term a quadruple position can hold
type TermKind byte

const (
	// KindResource is an addressable, URI-like identifier
	KindResource TermKind = iota + 1
	// KindLiteral is a typed or language-tagged value
	KindLiteral
)

func (k TermKind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Term represents an RDF term. Terms are immutable once constructed;
// the string form is the basis for hashing and exact-match comparison.
type Term interface {
	Kind() TermKind
	String() string
	Equals(other Term) bool
}

// Resource represents a URI-like identifier
type Resource struct {
	IRI string
}

func NewResource(iri string) *Resource {
	return &Resource{IRI: iri}
}

func (r *Resource) Kind() TermKind {
	return KindResource
}

func (r *Resource) String() string {
	return r.IRI
}

func (r *Resource) Equals(other Term) bool {
	if or, ok := other.(*Resource); ok {
		return r.IRI == or.IRI
	}
	return false
}

// Literal represents a typed or language-tagged value
type Literal struct {
	Value    string
	Language string    // for language-tagged strings
	Datatype *Resource // for typed literals
}

func NewLiteral(value string) *Literal {
	return &Literal{Value: value}
}

func NewLiteralWithLanguage(value, language string) *Literal {
	return &Literal{Value: value, Language: language}
}

func NewLiteralWithDatatype(value string, datatype *Resource) *Literal {
	return &Literal{Value: value, Datatype: datatype}
}

func (l *Literal) Kind() TermKind {
	return KindLiteral
}

// String renders value@lang for language-tagged literals and
// value^^datatype for typed literals. ParseLiteral is the inverse.
func (l *Literal) String() string {
	result := l.Value
	if l.Language != "" {
		result += "@" + l.Language
	} else if l.Datatype != nil {
		result += "^^" + l.Datatype.IRI
	}
	return result
}

// Equals reports exact equality: value, language tag, and datatype must
// all match. No partial or fuzzy matching is ever performed.
func (l *Literal) Equals(other Term) bool {
	if ol, ok := other.(*Literal); ok {
		if l.Value != ol.Value {
			return false
		}
		if l.Language != ol.Language {
			return false
		}
		if l.Datatype == nil && ol.Datatype == nil {
			return true
		}
		if l.Datatype != nil && ol.Datatype != nil {
			return l.Datatype.Equals(ol.Datatype)
		}
		return false
	}
	return false
}

// ParseLiteral rebuilds a Literal from its string form: the last ^^
// introduces a datatype, otherwise a trailing tag-shaped @-suffix
// introduces a language tag. The string form is unquoted, so the
// mapping is deterministic but not injective: a plain literal whose
// value happens to end in @+tag (say "foo@en") parses back as
// language-tagged. Its string form, and therefore its stored identity,
// is unchanged either way.
func ParseLiteral(s string) *Literal {
	if idx := strings.LastIndex(s, "^^"); idx >= 0 && idx+2 < len(s) {
		return NewLiteralWithDatatype(s[:idx], NewResource(s[idx+2:]))
	}
	if idx := strings.LastIndex(s, "@"); idx > 0 && isLanguageTag(s[idx+1:]) {
		return NewLiteralWithLanguage(s[:idx], s[idx+1:])
	}
	return NewLiteral(s)
}

// isLanguageTag reports whether s looks like a BCP 47 tag (letters,
// digits, and hyphens only). Keeps values containing @ from being
// misread as language-tagged.
func isLanguageTag(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

// Helper constructors for common XSD datatypes
var (
	XSDString   = NewResource("http://www.w3.org/2001/XMLSchema#string")
	XSDInteger  = NewResource("http://www.w3.org/2001/XMLSchema#integer")
	XSDDecimal  = NewResource("http://www.w3.org/2001/XMLSchema#decimal")
	XSDDouble   = NewResource("http://www.w3.org/2001/XMLSchema#double")
	XSDBoolean  = NewResource("http://www.w3.org/2001/XMLSchema#boolean")
	XSDDateTime = NewResource("http://www.w3.org/2001/XMLSchema#dateTime")
	XSDDate     = NewResource("http://www.w3.org/2001/XMLSchema#date")
)

func NewIntegerLiteral(value int64) *Literal {
	return NewLiteralWithDatatype(fmt.Sprintf("%d", value), XSDInteger)
}

func NewDoubleLiteral(value float64) *Literal {
	return NewLiteralWithDatatype(fmt.Sprintf("%g", value), XSDDouble)
}

func NewBooleanLiteral(value bool) *Literal {
	return NewLiteralWithDatatype(fmt.Sprintf("%t", value), XSDBoolean)
}

func NewDateTimeLiteral(value time.Time) *Literal {
	return NewLiteralWithDatatype(value.Format(time.RFC3339), XSDDateTime)
}
