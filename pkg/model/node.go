package model

import "errors"

// Validation errors returned by FilterNode.Validate. Mirrors the
// sentinel-error convention used throughout the rest of the module for
// input that is malformed before it ever reaches the planner.
var (
	ErrEmptyAttributeName = errors.New("filter: leaf attribute name cannot be empty")
	ErrUnknownOperator    = errors.New("filter: leaf operator is not one of the closed operator set")
	ErrUnknownCombinator  = errors.New("filter: group combinator must be AND or OR")
	ErrMixedNodeShape     = errors.New("filter: node must be exactly one of Leaf or Group, not both")
)

// FilterNode is the tagged-variant filter AST node from the spec: a
// node is either a Leaf (attributeName, operator, value) or a Group
// (combinator, children), never both. The shape is a flat struct with
// a Combinator discriminant rather than an interface hierarchy so it
// round-trips through JSON without a custom UnmarshalJSON per variant,
// matching how the teacher shapes its own wire types (pkg/types.Node).
type FilterNode struct {
	// Leaf fields. AttributeName is empty for a Group node.
	AttributeName string   `json:"attributeName,omitempty" yaml:"attributeName,omitempty"`
	Operator      Operator `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value         string   `json:"value,omitempty" yaml:"value,omitempty"`

	// Group fields. Combinator is empty for a Leaf node.
	Combinator Combinator   `json:"combinator,omitempty" yaml:"combinator,omitempty"`
	Children   []FilterNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsGroup reports whether n is a Group node (has a combinator).
func (n *FilterNode) IsGroup() bool {
	return n.Combinator != ""
}

// IsLeaf reports whether n is a Leaf node (has an attribute name).
func (n *FilterNode) IsLeaf() bool {
	return n.Combinator == "" && n.AttributeName != ""
}

// Validate checks structural well-formedness: exactly one of the
// Leaf/Group shapes is populated, and its discriminant values are
// members of the closed enumerations. It does not resolve attribute
// names against a schema — that is the Attribute Classifier's job.
func (n *FilterNode) Validate() error {
	isGroupShape := n.Combinator != "" || n.Children != nil
	isLeafShape := n.AttributeName != "" || n.Operator != "" || n.Value != ""

	if isGroupShape && isLeafShape {
		return ErrMixedNodeShape
	}

	if isGroupShape {
		if !n.Combinator.Valid() {
			return ErrUnknownCombinator
		}
		for i := range n.Children {
			if err := n.Children[i].Validate(); err != nil {
				return err
			}
		}
		return nil
	}

	if n.AttributeName == "" {
		return ErrEmptyAttributeName
	}
	if !n.Operator.Valid() {
		return ErrUnknownOperator
	}
	return nil
}

// Leaf constructs a Leaf FilterNode.
func Leaf(attributeName string, op Operator, value string) FilterNode {
	return FilterNode{AttributeName: attributeName, Operator: op, Value: value}
}

// Group constructs a Group FilterNode from an ordered list of children.
// Child order is preserved verbatim; it affects emitted query text but
// never plan semantics.
func Group(combinator Combinator, children ...FilterNode) FilterNode {
	return FilterNode{Combinator: combinator, Children: children}
}
