package quad

import "github.com/aleksaelezovic/quadstore/pkg/rdf"

// Case-specific pattern removals. Each helper names its required
// positions; passing nil for any of them is an insufficient pattern and
// performs no deletion, rather than degrading to a broader match and
// deleting more than the caller asked for.

func (s *Store) RemoveByContext(context *rdf.Resource) (int64, error) {
	if context == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithContext(context))
}

func (s *Store) RemoveBySubject(subject *rdf.Resource) (int64, error) {
	if subject == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithSubject(subject))
}

func (s *Store) RemoveByPredicate(predicate *rdf.Resource) (int64, error) {
	if predicate == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithPredicate(predicate))
}

func (s *Store) RemoveByObject(object *rdf.Resource) (int64, error) {
	if object == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithObjectResource(object))
}

func (s *Store) RemoveByLiteral(object *rdf.Literal) (int64, error) {
	if object == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithObjectLiteral(object))
}

func (s *Store) RemoveByContextSubject(context, subject *rdf.Resource) (int64, error) {
	if context == nil || subject == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithContext(context).WithSubject(subject))
}

func (s *Store) RemoveByContextPredicate(context, predicate *rdf.Resource) (int64, error) {
	if context == nil || predicate == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithContext(context).WithPredicate(predicate))
}

func (s *Store) RemoveByContextObject(context, object *rdf.Resource) (int64, error) {
	if context == nil || object == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithContext(context).WithObjectResource(object))
}

func (s *Store) RemoveByContextLiteral(context *rdf.Resource, object *rdf.Literal) (int64, error) {
	if context == nil || object == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithContext(context).WithObjectLiteral(object))
}

func (s *Store) RemoveBySubjectPredicate(subject, predicate *rdf.Resource) (int64, error) {
	if subject == nil || predicate == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithSubject(subject).WithPredicate(predicate))
}

func (s *Store) RemoveBySubjectObject(subject, object *rdf.Resource) (int64, error) {
	if subject == nil || object == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithSubject(subject).WithObjectResource(object))
}

func (s *Store) RemoveBySubjectLiteral(subject *rdf.Resource, object *rdf.Literal) (int64, error) {
	if subject == nil || object == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithSubject(subject).WithObjectLiteral(object))
}

func (s *Store) RemoveByPredicateObject(predicate, object *rdf.Resource) (int64, error) {
	if predicate == nil || object == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithPredicate(predicate).WithObjectResource(object))
}

func (s *Store) RemoveByPredicateLiteral(predicate *rdf.Resource, object *rdf.Literal) (int64, error) {
	if predicate == nil || object == nil {
		return 0, nil
	}
	return s.RemoveMatching(NewPattern().WithPredicate(predicate).WithObjectLiteral(object))
}
