package entities

import (
	"fmt"
	"strings"
)

// ValidationError reports a malformed or dangling reference in the input
// documents. Scope distinguishes order-local failures, which abort only the
// affected order, from catalog-wide failures, which abort the whole run.
type ValidationError struct {
	Scope  ValidationScope
	Entity string
	Reason string
}

// ValidationScope is the blast radius of a validation failure
type ValidationScope int

const (
	// ScopeOrder aborts only the order that triggered the failure
	ScopeOrder ValidationScope = iota
	// ScopeCatalog aborts the whole run
	ScopeCatalog
)

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Entity, e.Reason)
}

// NewValidationError creates a ValidationError for the given entity
func NewValidationError(scope ValidationScope, entity, format string, args ...any) *ValidationError {
	return &ValidationError{
		Scope:  scope,
		Entity: entity,
		Reason: fmt.Sprintf(format, args...),
	}
}

// CycleError reports a cycle in the part consumption graph found while
// exploding an order. Path lists the parts on the expansion path, ending
// with the part that closed the cycle.
type CycleError struct {
	Path []PartID
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, p := range e.Path {
		parts[i] = string(p)
	}
	return fmt.Sprintf("BOM cycle detected: %s", strings.Join(parts, " -> "))
}

// CapacityViolationError reports an attempted overdraw of a capacity
// bucket. The scheduler's placement invariant makes this unreachable; if
// it surfaces, it is an internal-consistency bug, not bad input.
type CapacityViolationError struct {
	WorkCenterID WorkCenterID
	Bucket       int
}

func (e *CapacityViolationError) Error() string {
	return fmt.Sprintf("capacity overdraw on work center %s bucket %d", e.WorkCenterID, e.Bucket)
}
