package schema

import (
	"errors"
	"testing"

	"github.com/graphcatalog/searchplanner/pkg/config"
	"github.com/graphcatalog/searchplanner/pkg/model"
)

var errBackendDown = errors.New("backend down")

// failingPort fails Qualify when failQualify is set; every other method delegates so the
// breaker test can isolate the tripping behavior to one call path.
type failingPort struct {
	*Registry
	failQualify bool
}

func (p *failingPort) Qualify(typeName, attrName string) (model.QualifiedAttribute, error) {
	if p.failQualify {
		return "", errBackendDown
	}
	return p.Registry.Qualify(typeName, attrName)
}

func TestCircuitBreakerPortPassesThroughOnSuccess(t *testing.T) {
	backend := &failingPort{Registry: newTestRegistry()}
	cfg := config.CircuitBreakerConfig{MaxRequests: 1, ReadyToTripRatio: 0.5}
	port := NewCircuitBreakerPort(backend, cfg, "test")

	qn, err := port.Qualify("Table", "name")
	if err != nil {
		t.Fatalf("Qualify: %v", err)
	}
	if qn != "Asset.name" {
		t.Errorf("got %q, want Asset.name", qn)
	}
}

func TestCircuitBreakerPortTripsAfterRepeatedFailures(t *testing.T) {
	backend := &failingPort{Registry: newTestRegistry(), failQualify: true}
	cfg := config.CircuitBreakerConfig{MaxRequests: 1, ReadyToTripRatio: 0.5}
	port := NewCircuitBreakerPort(backend, cfg, "test")

	var lastErr error
	for i := 0; i < 5; i++ {
		_, lastErr = port.Qualify("Table", "name")
	}
	if lastErr == nil {
		t.Fatalf("expected the breaker to eventually reject calls")
	}
}

func TestCircuitBreakerPortDelegatesReadOnlyMethods(t *testing.T) {
	backend := &failingPort{Registry: newTestRegistry()}
	cfg := config.CircuitBreakerConfig{MaxRequests: 1, ReadyToTripRatio: 0.5}
	port := NewCircuitBreakerPort(backend, cfg, "test")

	if !port.IsEntityType("Table") {
		t.Errorf("expected Table to be an entity type")
	}
	if got := port.SubtypeClosure("Table"); got != "(Table OR View)" {
		t.Errorf("got %q, want (Table OR View)", got)
	}
	if vt := port.AttributeValueType("Table", "name"); vt != model.ValueTypeString {
		t.Errorf("got %v, want string", vt)
	}
	if _, err := port.Normalize(model.ValueTypeInt, "7"); err != nil {
		t.Errorf("Normalize: %v", err)
	}
}
