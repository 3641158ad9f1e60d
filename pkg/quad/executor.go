package quad

import "fmt"

// Row is the executor-side representation of a quadruple: the content
// id, the flavor discriminant, one lookup key per position, and the
// display strings the quadruple is rebuilt from.
type Row struct {
	ID     ID
	Flavor Flavor

	ContextKey   uint64
	SubjectKey   uint64
	PredicateKey uint64
	ObjectKey    uint64

	Context   string
	Subject   string
	Predicate string
	Object    string
}

// Rows streams executor results back to the core. Close must be called
// on every stream, matched or not. Err must be checked after Next
// returns false: a backend can fail mid-stream, and the failure
// surfaces there rather than as an early false from Next.
type Rows interface {
	Next() bool
	Row() (Row, error)
	Err() error
	Close() error
}

// Executor is the pluggable backing store the core directs. Each call
// is one atomic unit of work: the executor wraps it in whatever
// transaction its engine needs and, on failure, leaves the persisted
// set exactly as it was. The core never passes backend-specific syntax
// across this boundary; translating a predicate conjunction into a
// storage-native query is the executor's job.
type Executor interface {
	// InsertIfAbsent stores the row unless a row with the same ID
	// already exists. Reports whether the row was newly inserted.
	InsertIfAbsent(row Row) (bool, error)

	// InsertBatchIfAbsent stores every row, skipping ids that already
	// exist, as a single atomic unit: either all absent rows become
	// visible or none do. Reports how many rows were newly inserted.
	InsertBatchIfAbsent(rows []Row) (int, error)

	// DeleteByID removes the row with the given id, if present.
	DeleteByID(id ID) error

	// DeleteWhere removes every row matching the conjunction and
	// reports how many were removed.
	DeleteWhere(lookup Lookup) (int64, error)

	// DeleteAll removes every stored row.
	DeleteAll() error

	// ExistsByID reports whether a row with the given id is stored.
	ExistsByID(id ID) (bool, error)

	// SelectWhere streams every row matching the conjunction.
	SelectWhere(lookup Lookup) (Rows, error)
}

// ExecutorError wraps a failure surfaced by the backing store. The core
// propagates it unchanged, with no retry: the executor guarantees the
// failed call left the persisted set untouched, so the caller may treat
// the operation as never started.
type ExecutorError struct {
	Op  string
	Err error
}

func (e *ExecutorError) Error() string {
	return fmt.Sprintf("executor %s: %v", e.Op, e.Err)
}

func (e *ExecutorError) Unwrap() error {
	return e.Err
}

func wrapExecutor(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ExecutorError{Op: op, Err: err}
}
