package schema

import (
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/graphcatalog/searchplanner/pkg/config"
	"github.com/graphcatalog/searchplanner/pkg/model"
)

// CircuitBreakerPort wraps a Port with github.com/sony/gobreaker so a
// networked schema registry that starts failing trips the breaker
// instead of blocking every planning session behind it. Adapted from
// the teacher's pkg/nlp.CircuitBreakerClient, which wraps an LLM
// Client the same way.
type CircuitBreakerPort struct {
	next Port
	cb   *gobreaker.CircuitBreaker
}

// NewCircuitBreakerPort wraps next with a circuit breaker configured
// from cfg. name identifies the breaker in logs and state-change
// callbacks (useful when a process wraps more than one schema source).
func NewCircuitBreakerPort(next Port, cfg config.CircuitBreakerConfig, name string) *CircuitBreakerPort {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 3 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.ReadyToTripRatio
		},
	}

	return &CircuitBreakerPort{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(st),
	}
}

// Qualify implements Port, routing the call through the breaker.
func (p *CircuitBreakerPort) Qualify(typeName, attrName string) (model.QualifiedAttribute, error) {
	result, err := p.cb.Execute(func() (any, error) {
		return p.next.Qualify(typeName, attrName)
	})
	if err != nil {
		return "", fmt.Errorf("schema: circuit breaker: %w", err)
	}
	return result.(model.QualifiedAttribute), nil
}

// IsEntityType implements Port. Breaker state is not consulted here:
// a tripped breaker should fail attribute resolution, not silently
// misclassify a type as non-entity.
func (p *CircuitBreakerPort) IsEntityType(typeName string) bool {
	return p.next.IsEntityType(typeName)
}

// SubtypeClosure implements Port.
func (p *CircuitBreakerPort) SubtypeClosure(typeName string) string {
	return p.next.SubtypeClosure(typeName)
}

// AttributeValueType implements Port.
func (p *CircuitBreakerPort) AttributeValueType(typeName, attrName string) model.ValueType {
	return p.next.AttributeValueType(typeName, attrName)
}

// Normalize implements Port.
func (p *CircuitBreakerPort) Normalize(vt model.ValueType, raw string) (any, error) {
	return p.next.Normalize(vt, raw)
}
