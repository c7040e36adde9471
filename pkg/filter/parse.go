// Package filter decodes the wire representation of a filter AST
// (spec.md §3) from JSON, tolerating the kind of malformed JSON an
// upstream UI or hand-edited request occasionally sends.
package filter

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonrepair "github.com/kaptinlin/jsonrepair"

	"github.com/graphcatalog/searchplanner/pkg/model"
)

// ParseJSON decodes raw into a model.FilterNode. If raw does not parse
// as-is, ParseJSON attempts a repair pass via
// github.com/kaptinlin/jsonrepair (unbalanced braces, trailing
// commas, unquoted keys) before giving up, mirroring the teacher's
// retry-then-repair pattern in pkg/llm for salvaging near-miss JSON
// from an unreliable source.
func ParseJSON(raw []byte) (model.FilterNode, error) {
	node, err := decode(raw)
	if err == nil {
		if verr := node.Validate(); verr != nil {
			return model.FilterNode{}, fmt.Errorf("filter: invalid filter tree: %w", verr)
		}
		return node, nil
	}

	repaired, rerr := jsonrepair.JSONRepair(string(raw))
	if rerr != nil {
		return model.FilterNode{}, fmt.Errorf("filter: malformed JSON and repair failed: %w", err)
	}

	node, derr := decode([]byte(repaired))
	if derr != nil {
		return model.FilterNode{}, fmt.Errorf("filter: malformed JSON even after repair: %w", derr)
	}

	if verr := node.Validate(); verr != nil {
		return model.FilterNode{}, fmt.Errorf("filter: invalid filter tree after repair: %w", verr)
	}
	return node, nil
}

func decode(raw []byte) (model.FilterNode, error) {
	var node model.FilterNode
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&node); err != nil {
		return model.FilterNode{}, err
	}
	return node, nil
}
