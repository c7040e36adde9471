package search

import (
	"github.com/graphcatalog/searchplanner/pkg/diagnostics"
	"github.com/graphcatalog/searchplanner/pkg/model"
)

// unsupportedOperatorDiagnostic builds the Diagnostic recorded when an
// emitter encounters an operator it does not support for the given
// leaf (e.g. IN in the graph emitter).
func unsupportedOperatorDiagnostic(emitter string, node *model.FilterNode) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Kind:      diagnostics.KindUnsupportedOperator,
		Emitter:   emitter,
		Attribute: node.AttributeName,
		Message:   (&UnsupportedOperatorError{Operator: node.Operator, Emitter: emitter}).Error(),
	}
}
