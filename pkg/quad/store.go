package quad

import "github.com/aleksaelezovic/quadstore/pkg/rdf"

// Store applies mutations and selections against an injected Executor.
// It holds no connection state, no locks, and performs no logging: each
// method is one synchronous unit of work the executor runs atomically.
type Store struct {
	exec Executor
}

// NewStore wires the core to a backing executor. The caller owns the
// executor's lifecycle (open, scope, close).
func NewStore(exec Executor) *Store {
	return &Store{exec: exec}
}

// Add inserts q if no quadruple with the same id exists. Reports
// whether q was newly added; adding an existing quadruple is a no-op,
// not an error. Nil input is a no-op.
func (s *Store) Add(q *Quadruple) (bool, error) {
	if q == nil {
		return false, nil
	}
	added, err := s.exec.InsertIfAbsent(q.row())
	if err != nil {
		return false, wrapExecutor("insert", err)
	}
	return added, nil
}

// Remove deletes q by content id, if present. Nil input is a no-op.
func (s *Store) Remove(q *Quadruple) error {
	if q == nil {
		return nil
	}
	if err := s.exec.DeleteByID(q.ID()); err != nil {
		return wrapExecutor("delete", err)
	}
	return nil
}

// RemoveMatching deletes every quadruple matching the pattern and
// reports how many were removed. A nil or empty pattern is an
// insufficient pattern and performs no deletion; deleting everything is
// Clear's job and must be asked for explicitly.
func (s *Store) RemoveMatching(p *Pattern) (int64, error) {
	if p == nil || p.Empty() {
		return 0, nil
	}
	removed, err := s.exec.DeleteWhere(p.Compile())
	if err != nil {
		return 0, wrapExecutor("delete matching", err)
	}
	return removed, nil
}

// Clear deletes every stored quadruple unconditionally.
func (s *Store) Clear() error {
	if err := s.exec.DeleteAll(); err != nil {
		return wrapExecutor("clear", err)
	}
	return nil
}

// Merge bulk-adds every quadruple in c as one atomic batch, preserving
// per-quadruple insert-if-absent idempotence. When context is non-nil,
// each quadruple is restamped with it before insertion. Reports how
// many quadruples were newly added. Nil input is a no-op.
func (s *Store) Merge(c *Collection, context *rdf.Resource) (int, error) {
	if c == nil || c.Len() == 0 {
		return 0, nil
	}

	rows := make([]Row, 0, c.Len())
	seen := make(map[ID]struct{}, c.Len())
	for _, q := range c.Slice() {
		if context != nil {
			restamped, err := NewQuadruple(context, q.Subject, q.Predicate, q.Object)
			if err != nil {
				return 0, err
			}
			q = restamped
		}
		// Restamping can collapse distinct quadruples onto one id.
		if _, ok := seen[q.ID()]; ok {
			continue
		}
		seen[q.ID()] = struct{}{}
		rows = append(rows, q.row())
	}

	added, err := s.exec.InsertBatchIfAbsent(rows)
	if err != nil {
		return 0, wrapExecutor("merge", err)
	}
	return added, nil
}

// Select compiles the pattern, streams matching rows from the executor,
// and rebuilds them into a set-semantic collection. The result is never
// nil; an empty pattern (or nil, treated the same) returns every stored
// quadruple.
func (s *Store) Select(p *Pattern) (*Collection, error) {
	if p == nil {
		p = NewPattern()
	}

	rows, err := s.exec.SelectWhere(p.Compile())
	if err != nil {
		return nil, wrapExecutor("select", err)
	}
	defer rows.Close()

	result := NewCollection()
	for rows.Next() {
		row, err := rows.Row()
		if err != nil {
			return nil, wrapExecutor("select", err)
		}
		q, err := quadrupleFromRow(row)
		if err != nil {
			return nil, err
		}
		result.Add(q)
	}
	// A mid-stream backend failure ends the loop without an error from
	// Row; it must not pass as a short result.
	if err := rows.Err(); err != nil {
		return nil, wrapExecutor("select", err)
	}

	return result, nil
}

// Contains reports whether q is stored, by direct id lookup. Nil input
// returns false.
func (s *Store) Contains(q *Quadruple) (bool, error) {
	if q == nil {
		return false, nil
	}
	exists, err := s.exec.ExistsByID(q.ID())
	if err != nil {
		return false, wrapExecutor("exists", err)
	}
	return exists, nil
}
