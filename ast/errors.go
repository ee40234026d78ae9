package ast

import (
	"errors"
	"fmt"
)

var ErrDefinitionNotFound = errors.New("definition not found")

// TypeResolutionError reports a type name that does not resolve to any
// definition reachable from the root namespace.
type TypeResolutionError struct {
	Name     string
	Position Position
	err      error
}

func (e *TypeResolutionError) Error() string {
	if e.err != nil && !errors.Is(e.err, ErrDefinitionNotFound) {
		return fmt.Sprintf("Cannot resolve type `%s` at %s: %s", e.Name, e.Position, e.err)
	}
	return fmt.Sprintf("Cannot resolve type `%s` at %s", e.Name, e.Position)
}

func (e *TypeResolutionError) Unwrap() error {
	if e.err == nil {
		return ErrDefinitionNotFound
	}
	return e.err
}

// CaseResolutionError reports a union case label that is not a member of the
// union's discriminant enum.
type CaseResolutionError struct {
	Union    string
	Case     string
	Type     string
	Position Position
}

func (e *CaseResolutionError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("Case error: %s in union %s does not name a constant at %s", e.Case, e.Union, e.Position)
	}
	return fmt.Sprintf("Case error: %s in union %s is not a member of %s at %s", e.Case, e.Union, e.Type, e.Position)
}

// DiscriminantError reports a union whose discriminant is neither an enum
// nor an integer type.
type DiscriminantError struct {
	Union    string
	Type     string
	Position Position
}

func (e *DiscriminantError) Error() string {
	return fmt.Sprintf("Invalid discriminant type %s for union %s at %s: expected an enum, int, unsigned int or bool", e.Type, e.Union, e.Position)
}
