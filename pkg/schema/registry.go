package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/graphcatalog/searchplanner/pkg/model"
)

// Kind distinguishes entity types (concrete catalog objects, e.g.
// Table, View) from classification types (tags/labels attached to
// entities, e.g. PII), matching the distinction spec.md §4.1 draws for
// entityAttributes membership.
type Kind int

const (
	KindEntity Kind = iota
	KindClassification
)

// AttributeMeta describes a single attribute on a registered type.
// Named and shaped after mattbaird-ontology's schema.FieldMeta, adapted
// to the value-type vocabulary this planner needs.
type AttributeMeta struct {
	Name          string
	QualifiedName model.QualifiedAttribute
	ValueType     model.ValueType
}

// TypeMeta describes one entity or classification type: its own
// attributes, its supertype (for attribute inheritance), and its
// direct subtypes (for closure computation).
type TypeMeta struct {
	Name       string
	Kind       Kind
	Supertype  string // empty for a root type
	Subtypes   []string
	Attributes map[string]*AttributeMeta
}

// Registry is an in-memory Schema Port backed by a fixed set of
// TypeMeta definitions, populated once at construction and read-only
// thereafter — the same "populated at init, safe for concurrent reads"
// shape as mattbaird-ontology's internal/repl/schema.Registry.
type Registry struct {
	types map[string]*TypeMeta
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*TypeMeta)}
}

// Register adds a type definition to the registry. Call LinkSubtypes
// once all types and their supertype relationships are known so
// Subtypes can be back-filled.
func (r *Registry) Register(t *TypeMeta) {
	if t.Attributes == nil {
		t.Attributes = make(map[string]*AttributeMeta)
	}
	r.types[t.Name] = t
}

// LinkSubtypes back-fills each type's Subtypes list from the
// Supertype pointers of every registered type. Call this once after
// all Register calls, before using the registry as a Port.
func (r *Registry) LinkSubtypes() {
	for _, t := range r.types {
		t.Subtypes = nil
	}
	for _, t := range r.types {
		if t.Supertype == "" {
			continue
		}
		if parent, ok := r.types[t.Supertype]; ok {
			parent.Subtypes = append(parent.Subtypes, t.Name)
		}
	}
	for _, t := range r.types {
		sort.Strings(t.Subtypes)
	}
}

func (r *Registry) resolveAttribute(typeName, attrName string) (*TypeMeta, *AttributeMeta) {
	seen := make(map[string]bool)
	for typeName != "" && !seen[typeName] {
		seen[typeName] = true
		t, ok := r.types[typeName]
		if !ok {
			return nil, nil
		}
		if attr, ok := t.Attributes[attrName]; ok {
			return t, attr
		}
		typeName = t.Supertype
	}
	return nil, nil
}

// Qualify implements Port.
func (r *Registry) Qualify(typeName, attrName string) (model.QualifiedAttribute, error) {
	_, attr := r.resolveAttribute(typeName, attrName)
	if attr == nil {
		return "", fmt.Errorf("%w: %s.%s", ErrAttributeNotFound, typeName, attrName)
	}
	return attr.QualifiedName, nil
}

// IsEntityType implements Port.
func (r *Registry) IsEntityType(typeName string) bool {
	t, ok := r.types[typeName]
	return ok && t.Kind == KindEntity
}

// SubtypeClosure implements Port. Renders "(Root OR Sub1 OR Sub2)" for
// typeName and every type transitively derived from it — not just its
// direct children — or the bare type name when the closure has a
// single member, matching Atlas's AtlasStructType.getTypeAndAllSubTypes
// (spec.md GLOSSARY: subtype closure includes types "transitively
// derived", not just one level of Subtypes).
func (r *Registry) SubtypeClosure(typeName string) string {
	t, ok := r.types[typeName]
	if !ok {
		return typeName
	}

	members := append([]string{t.Name}, r.transitiveDescendants(t.Name)...)
	if len(members) == 1 {
		return members[0]
	}
	return "(" + strings.Join(members, " OR ") + ")"
}

// transitiveDescendants returns every type reachable from typeName by
// following Subtypes edges, however deep, in sorted order. Registered
// types form a DAG in practice (a type tree), but the visited set also
// guards against a cyclic Supertype configuration.
func (r *Registry) transitiveDescendants(typeName string) []string {
	visited := map[string]bool{typeName: true}
	var descendants []string

	queue := []string{typeName}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		t, ok := r.types[name]
		if !ok {
			continue
		}
		for _, child := range t.Subtypes {
			if visited[child] {
				continue
			}
			visited[child] = true
			descendants = append(descendants, child)
			queue = append(queue, child)
		}
	}

	sort.Strings(descendants)
	return descendants
}

// AttributeValueType implements Port.
func (r *Registry) AttributeValueType(typeName, attrName string) model.ValueType {
	_, attr := r.resolveAttribute(typeName, attrName)
	if attr == nil {
		return model.ValueTypeUnknown
	}
	return attr.ValueType
}

// Normalize implements Port. Dates parse as RFC3339; ints and floats
// use strconv; strings and bools pass through their standard parsers.
// Unrecognized value types return the raw string unchanged.
func (r *Registry) Normalize(vt model.ValueType, raw string) (any, error) {
	switch vt {
	case model.ValueTypeDate:
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			// Fall back to a bare date, the common case for filter UIs
			// that only collect a calendar day.
			t, err = time.Parse("2006-01-02", raw)
			if err != nil {
				return nil, fmt.Errorf("schema: cannot normalize %q as date: %w", raw, err)
			}
		}
		return t, nil
	case model.ValueTypeInt:
		return strconv.ParseInt(raw, 10, 64)
	case model.ValueTypeFloat:
		return strconv.ParseFloat(raw, 64)
	case model.ValueTypeBool:
		return strconv.ParseBool(raw)
	default:
		return raw, nil
	}
}
