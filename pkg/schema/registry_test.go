package schema

import (
	"errors"
	"testing"
	"time"

	"github.com/graphcatalog/searchplanner/pkg/model"
)

func newTestRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TypeMeta{
		Name: "Asset",
		Kind: KindEntity,
		Attributes: map[string]*AttributeMeta{
			"name": {Name: "name", QualifiedName: "Asset.name", ValueType: model.ValueTypeString},
		},
	})
	r.Register(&TypeMeta{
		Name:      "Table",
		Kind:      KindEntity,
		Supertype: "Asset",
		Attributes: map[string]*AttributeMeta{
			"rowCount": {Name: "rowCount", QualifiedName: "Table.rowCount", ValueType: model.ValueTypeInt},
		},
	})
	r.Register(&TypeMeta{
		Name:      "View",
		Kind:      KindEntity,
		Supertype: "Table",
	})
	r.LinkSubtypes()
	return r
}

func TestRegistryQualifyResolvesInheritedAttribute(t *testing.T) {
	r := newTestRegistry()

	qn, err := r.Qualify("View", "name")
	if err != nil {
		t.Fatalf("Qualify: %v", err)
	}
	if qn != "Asset.name" {
		t.Errorf("got %q, want Asset.name", qn)
	}
}

func TestRegistryQualifyUnknownAttributeReturnsSentinel(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Qualify("Table", "doesNotExist")
	if !errors.Is(err, ErrAttributeNotFound) {
		t.Fatalf("expected ErrAttributeNotFound, got %v", err)
	}
}

func TestRegistrySubtypeClosureRendersOrGroup(t *testing.T) {
	r := newTestRegistry()

	got := r.SubtypeClosure("Table")
	want := "(Table OR View)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRegistrySubtypeClosureSingleMemberHasNoParens(t *testing.T) {
	r := newTestRegistry()

	got := r.SubtypeClosure("View")
	if got != "View" {
		t.Errorf("got %q, want View", got)
	}
}

// The registry's Asset -> Table -> View chain is three levels deep;
// SubtypeClosure rooted at the topmost ancestor must still include the
// leaf, not just its direct child.
func TestRegistrySubtypeClosureIsTransitive(t *testing.T) {
	r := newTestRegistry()

	got := r.SubtypeClosure("Asset")
	want := "(Asset OR Table OR View)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRegistryIsEntityType(t *testing.T) {
	r := newTestRegistry()
	r.Register(&TypeMeta{Name: "PII", Kind: KindClassification})
	r.LinkSubtypes()

	if !r.IsEntityType("Table") {
		t.Errorf("expected Table to be an entity type")
	}
	if r.IsEntityType("PII") {
		t.Errorf("expected PII not to be an entity type")
	}
	if r.IsEntityType("DoesNotExist") {
		t.Errorf("expected an unregistered type to report false")
	}
}

func TestRegistryNormalizeDate(t *testing.T) {
	r := newTestRegistry()

	got, err := r.Normalize(model.ValueTypeDate, "2024-01-01")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.(time.Time).Year() != 2024 {
		t.Errorf("unexpected normalized date: %v", got)
	}
}

func TestRegistryNormalizeInt(t *testing.T) {
	r := newTestRegistry()

	got, err := r.Normalize(model.ValueTypeInt, "42")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.(int64) != 42 {
		t.Errorf("got %v, want 42", got)
	}
}

func TestRegistryNormalizeRejectsMalformedInt(t *testing.T) {
	r := newTestRegistry()

	if _, err := r.Normalize(model.ValueTypeInt, "not-a-number"); err == nil {
		t.Errorf("expected an error for a malformed int")
	}
}
