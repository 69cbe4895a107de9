package shared

import (
	"fmt"
	"strings"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Catalog errors

// CatalogError reports a component definition rejected while loading a catalog.
// The loader skips the component and keeps going.
type CatalogError struct {
	*DomainError
	ComponentID string
	Reason      string
}

func NewCatalogError(componentID, reason string) *CatalogError {
	return &CatalogError{
		DomainError: NewDomainError(fmt.Sprintf("component %s rejected: %s", componentID, reason)),
		ComponentID: componentID,
		Reason:      reason,
	}
}

type ComponentNotFoundError struct {
	*DomainError
	ComponentID string
}

func NewComponentNotFoundError(componentID string) *ComponentNotFoundError {
	return &ComponentNotFoundError{
		DomainError: NewDomainError(fmt.Sprintf("component not found: %s", componentID)),
		ComponentID: componentID,
	}
}

// Ship/design errors

type DesignError struct {
	*DomainError
}

func NewDesignError(message string) *DesignError {
	return &DesignError{DomainError: NewDomainError(message)}
}

type InvalidShipDataError struct {
	*DesignError
}

func NewInvalidShipDataError(message string) *InvalidShipDataError {
	return &InvalidShipDataError{DesignError: NewDesignError(message)}
}

type InstanceNotFoundError struct {
	*DesignError
	InstanceID string
}

func NewInstanceNotFoundError(instanceID string) *InstanceNotFoundError {
	return &InstanceNotFoundError{
		DesignError: NewDesignError(fmt.Sprintf("installed component not found: %s", instanceID)),
		InstanceID:  instanceID,
	}
}

type DesignNotFoundError struct {
	*DesignError
	DesignID string
}

func NewDesignNotFoundError(designID string) *DesignNotFoundError {
	return &DesignNotFoundError{
		DesignError: NewDesignError(fmt.Sprintf("design not found: %s", designID)),
		DesignID:    designID,
	}
}

// DesignRejectedError is returned when an addition fails one or more design rules.
// Failures holds the messages of the failing verdicts in rule order.
type DesignRejectedError struct {
	*DesignError
	ComponentID string
	Failures    []string
}

func NewDesignRejectedError(componentID string, failures []string) *DesignRejectedError {
	return &DesignRejectedError{
		DesignError: NewDesignError(fmt.Sprintf("cannot add %s: %s", componentID, strings.Join(failures, "; "))),
		ComponentID: componentID,
		Failures:    failures,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
