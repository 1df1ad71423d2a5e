package codegen

import (
	"errors"
	"fmt"
	"strings"
)

// UnsupportedTypeError is returned when a field's type has no structural schema representation.
type UnsupportedTypeError struct {
	Resource string
	Path     string
	Type     SchemaKind
	Reason   string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: field '%s' of type %s cannot be represented in a structural schema: %s", e.Resource, e.Path, e.Type, e.Reason)
}

// CyclicSchemaError is returned when a self-referential type is nested beyond the recursion bound.
type CyclicSchemaError struct {
	Resource string
	Path     string
	Ref      string
	Bound    int
}

func (e *CyclicSchemaError) Error() string {
	return fmt.Sprintf("%s: field '%s' references '%s' recursively beyond the depth bound of %d", e.Resource, e.Path, e.Ref, e.Bound)
}

// InvalidDefaultError is returned when a default value does not satisfy the schema of its own field.
type InvalidDefaultError struct {
	Resource string
	Path     string
	Default  any
	Err      error
}

func (e *InvalidDefaultError) Error() string {
	return fmt.Sprintf("%s: default %v of field '%s' is invalid: %v", e.Resource, e.Default, e.Path, e.Err)
}

func (e *InvalidDefaultError) Unwrap() error {
	return e.Err
}

// VersionConflictError is returned when the versions of a kind cannot be merged into one CRD.
type VersionConflictError struct {
	Resource string
	Versions []string
	Reason   string
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: version conflict in [%s]: %s", e.Resource, strings.Join(e.Versions, ", "), e.Reason)
}

// InvalidNamingError is returned when a group, kind, version or resource name is not valid for the API server.
type InvalidNamingError struct {
	Resource string
	Field    string
	Value    string
	Problems []string
}

func (e *InvalidNamingError) Error() string {
	return fmt.Sprintf("%s: invalid %s '%s': %s", e.Resource, e.Field, e.Value, strings.Join(e.Problems, "; "))
}

// SchemaTooLargeError is returned when a schema exceeds a size limit enforced by the API server.
type SchemaTooLargeError struct {
	Resource string
	Version  string
	Limit    string
	Value    int
	Max      int
}

func (e *SchemaTooLargeError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf("%s: schema %s %d exceeds the maximum of %d", e.Resource, e.Limit, e.Value, e.Max)
	}
	return fmt.Sprintf("%s: version %s schema %s %d exceeds the maximum of %d", e.Resource, e.Version, e.Limit, e.Value, e.Max)
}

// MissingDeclarationError is returned when declared access refers to a kind with no CRD or built-in API definition.
type MissingDeclarationError struct {
	Source string
	Group  string
	Kind   string
}

func (e *MissingDeclarationError) Error() string {
	group := e.Group
	if group == "" {
		group = "core"
	}
	return fmt.Sprintf("%s: access declared for kind '%s' in group '%s', which has no CRD or built-in API definition", e.Source, e.Kind, group)
}

// InvalidVerbError is returned when declared access uses a verb outside the fixed vocabulary.
type InvalidVerbError struct {
	Source string
	Group  string
	Kind   string
	Verb   string
}

func (e *InvalidVerbError) Error() string {
	return fmt.Sprintf("%s: access declared for kind '%s' uses unknown verb '%s'", e.Source, e.Kind, e.Verb)
}

// ConflictingScopeError is returned when the same resource is declared with different scopes.
type ConflictingScopeError struct {
	Group    string
	Resource string
	Scopes   []Scope
	Sources  []string
}

func (e *ConflictingScopeError) Error() string {
	scopes := make([]string, len(e.Scopes))
	for i, s := range e.Scopes {
		scopes[i] = string(s)
	}
	return fmt.Sprintf("resource '%s' in group '%s' declared with conflicting scopes [%s] by [%s]", e.Resource, e.Group, strings.Join(scopes, ", "), strings.Join(e.Sources, ", "))
}

// WriteError is returned when a manifest cannot be written to disk.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ErrorKind returns the taxonomy name of a generator error, e.g. "CyclicSchemaError",
// searching wrapped and aggregated errors. It returns "Error" for anything else.
func ErrorKind(err error) string {
	var (
		unsupported *UnsupportedTypeError
		cyclic      *CyclicSchemaError
		badDefault  *InvalidDefaultError
		conflict    *VersionConflictError
		naming      *InvalidNamingError
		tooLarge    *SchemaTooLargeError
		missing     *MissingDeclarationError
		verb        *InvalidVerbError
		scope       *ConflictingScopeError
		write       *WriteError
	)
	switch {
	case errors.As(err, &unsupported):
		return "UnsupportedTypeError"
	case errors.As(err, &cyclic):
		return "CyclicSchemaError"
	case errors.As(err, &badDefault):
		return "InvalidDefaultError"
	case errors.As(err, &conflict):
		return "VersionConflictError"
	case errors.As(err, &naming):
		return "InvalidNamingError"
	case errors.As(err, &tooLarge):
		return "SchemaTooLargeError"
	case errors.As(err, &missing):
		return "MissingDeclarationError"
	case errors.As(err, &verb):
		return "InvalidVerbError"
	case errors.As(err, &scope):
		return "ConflictingScopeError"
	case errors.As(err, &write):
		return "WriteError"
	}
	return "Error"
}
