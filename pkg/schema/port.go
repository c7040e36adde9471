// Package schema implements the Schema Port (spec.md §6): the abstract
// view of entity and classification types that the Attribute Classifier
// and the emitters consume to qualify attribute names, resolve value
// types, and enumerate subtype closures.
package schema

import (
	"errors"

	"github.com/graphcatalog/searchplanner/pkg/model"
)

// ErrAttributeNotFound is returned by Port.Qualify when attrName does
// not exist on typeName (spec.md §6: "qualify(...) → qualifiedName |
// NotFound").
var ErrAttributeNotFound = errors.New("schema: attribute not found")

// ErrTypeNotFound is returned when typeName itself is not registered.
var ErrTypeNotFound = errors.New("schema: type not found")

// Port is the abstract Schema Port. Implementations are expected to be
// immutable snapshots for the lifetime of a planning session (spec.md
// §5): no method may block on anything but a local read.
type Port interface {
	// Qualify resolves attrName on typeName to its fully-qualified
	// form. Returns ErrAttributeNotFound (wrapped) if attrName is not
	// defined on typeName or any of its supertypes.
	Qualify(typeName, attrName string) (model.QualifiedAttribute, error)

	// IsEntityType reports whether typeName is an entity type as
	// opposed to a classification type.
	IsEntityType(typeName string) bool

	// SubtypeClosure returns the pre-rendered "typeName and all its
	// subtypes" clause used to build the index query's type-test
	// clause (spec.md §4.3), e.g. "(Table OR View)".
	SubtypeClosure(typeName string) string

	// AttributeValueType resolves the normalized value type of
	// attrName on typeName.
	AttributeValueType(typeName, attrName string) model.ValueType

	// Normalize converts a raw filter value into its canonical Go
	// representation for the given value type. Used only by the
	// Gremlin Emitter (spec.md §6).
	Normalize(vt model.ValueType, raw string) (any, error)
}
