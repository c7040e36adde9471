package model

// ValueType is the normalized value type the Schema Port resolves an
// attribute to (spec.md §6, attributeValueType). Only the Gremlin
// Emitter consumes ValueType directly (via SchemaPort.Normalize), to
// decide whether a bound value needs epoch-millisecond conversion.
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeInt     ValueType = "int"
	ValueTypeFloat   ValueType = "float"
	ValueTypeBool    ValueType = "bool"
	ValueTypeDate    ValueType = "date"
	ValueTypeUnknown ValueType = "unknown"
)
