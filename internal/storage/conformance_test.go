package storage

import (
	"testing"

	"github.com/aleksaelezovic/quadstore/pkg/quad"
	"github.com/aleksaelezovic/quadstore/pkg/rdf"
)

func mustQuadruple(t *testing.T, ctx, subj, pred string, obj rdf.Term) *quad.Quadruple {
	t.Helper()
	q, err := quad.NewQuadruple(rdf.NewResource(ctx), rdf.NewResource(subj), rdf.NewResource(pred), obj)
	if err != nil {
		t.Fatalf("failed to construct quadruple: %v", err)
	}
	return q
}

// runExecutorConformance drives a backend through the full mutation and
// selection contract via the core. Both executors must pass it
// identically; backend-specific behavior is tested separately.
func runExecutorConformance(t *testing.T, exec quad.Executor) {
	t.Helper()
	store := quad.NewStore(exec)

	alice := mustQuadruple(t, "ex:graph1", "ex:alice", "foaf:name", rdf.NewLiteral("Alice"))
	bob := mustQuadruple(t, "ex:graph1", "ex:bob", "foaf:name", rdf.NewLiteral("Bob"))
	knows := mustQuadruple(t, "ex:graph2", "ex:alice", "foaf:knows", rdf.NewResource("ex:bob"))

	// Insert-if-absent semantics
	for _, q := range []*quad.Quadruple{alice, bob, knows} {
		added, err := store.Add(q)
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if !added {
			t.Fatalf("expected %v to be newly added", q)
		}
	}
	added, err := store.Add(alice)
	if err != nil {
		t.Fatalf("duplicate add failed: %v", err)
	}
	if added {
		t.Error("duplicate add must be a no-op")
	}

	// Contains by id
	if ok, err := store.Contains(alice); err != nil || !ok {
		t.Errorf("Contains(alice) = (%v, %v)", ok, err)
	}
	missing := mustQuadruple(t, "ex:graph1", "ex:carol", "foaf:name", rdf.NewLiteral("Carol"))
	if ok, err := store.Contains(missing); err != nil || ok {
		t.Errorf("Contains(missing) = (%v, %v)", ok, err)
	}

	// Full scan
	all, err := store.Select(nil)
	if err != nil {
		t.Fatalf("full scan failed: %v", err)
	}
	if all.Len() != 3 {
		t.Fatalf("full scan returned %d quadruples, expected 3", all.Len())
	}

	// Bound-position selection
	graph1, err := store.Select(quad.NewPattern().WithContext(rdf.NewResource("ex:graph1")))
	if err != nil {
		t.Fatalf("context select failed: %v", err)
	}
	if graph1.Len() != 2 || !graph1.Contains(alice) || !graph1.Contains(bob) {
		t.Errorf("context select returned wrong set (%d quadruples)", graph1.Len())
	}

	byName, err := store.Select(quad.NewPattern().
		WithSubject(rdf.NewResource("ex:alice")).
		WithPredicate(rdf.NewResource("foaf:name")).
		WithObjectLiteral(rdf.NewLiteral("Alice")))
	if err != nil {
		t.Fatalf("SPL select failed: %v", err)
	}
	if byName.Len() != 1 || !byName.Contains(alice) {
		t.Errorf("SPL select returned wrong set (%d quadruples)", byName.Len())
	}

	// Flavor separation: equal object string forms across kinds
	asResource := mustQuadruple(t, "ex:graph3", "ex:s", "ex:p", rdf.NewResource("x"))
	asLiteral := mustQuadruple(t, "ex:graph3", "ex:s", "ex:p", rdf.NewLiteral("x"))
	for _, q := range []*quad.Quadruple{asResource, asLiteral} {
		added, err := store.Add(q)
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if !added {
			t.Fatal("both object kinds must be stored as distinct quadruples")
		}
	}
	onlyResource, err := store.Select(quad.NewPattern().
		WithContext(rdf.NewResource("ex:graph3")).
		WithObjectResource(rdf.NewResource("x")))
	if err != nil {
		t.Fatalf("flavor select failed: %v", err)
	}
	if onlyResource.Len() != 1 || !onlyResource.Contains(asResource) {
		t.Errorf("resource-object select must return exactly the resource quadruple, got %d", onlyResource.Len())
	}

	// Merge with context override, atomic batch
	batch := quad.NewCollection()
	batch.Add(mustQuadruple(t, "ex:tmp", "ex:dave", "foaf:name", rdf.NewLiteral("Dave")))
	batch.Add(alice) // restamping moves it under the override context
	merged, err := store.Merge(batch, rdf.NewResource("ex:merged"))
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if merged != 2 {
		t.Errorf("merge added %d quadruples, expected 2", merged)
	}
	mergedSet, err := store.Select(quad.NewPattern().WithContext(rdf.NewResource("ex:merged")))
	if err != nil {
		t.Fatalf("merged select failed: %v", err)
	}
	if mergedSet.Len() != 2 {
		t.Errorf("expected 2 quadruples under override context, got %d", mergedSet.Len())
	}

	// Remove by quadruple
	if err := store.Remove(knows); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if ok, err := store.Contains(knows); err != nil || ok {
		t.Errorf("Contains after remove = (%v, %v)", ok, err)
	}

	// Remove by pattern
	removed, err := store.RemoveMatching(quad.NewPattern().WithContext(rdf.NewResource("ex:graph1")))
	if err != nil {
		t.Fatalf("RemoveMatching failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed %d quadruples, expected 2", removed)
	}

	// Insufficient pattern removes nothing
	removed, err = store.RemoveMatching(quad.NewPattern().WithContext(nil))
	if err != nil {
		t.Fatalf("RemoveMatching failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("insufficient pattern removed %d quadruples", removed)
	}

	// Clear
	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	empty, err := store.Select(nil)
	if err != nil {
		t.Fatalf("select after clear failed: %v", err)
	}
	if empty.Len() != 0 {
		t.Errorf("expected empty store after clear, got %d", empty.Len())
	}
}
