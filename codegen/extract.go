package codegen

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const (
	// DefaultMaxDepth is the nesting depth past which extraction gives up.
	DefaultMaxDepth = 64
)

// ExtractOptions configures Extract.
type ExtractOptions struct {
	// MaxRecursion is how many times a self-referential type may be expanded along one path.
	// With 0 every self-reference fails with a CyclicSchemaError. With N > 0, an optional
	// self-reference is expanded N times and then left out of the realized tree, and a
	// required one fails with a CyclicSchemaError.
	MaxRecursion int
	// MaxDepth bounds the nesting depth of the realized tree. Values <= 0 use DefaultMaxDepth.
	MaxDepth int
}

// DefaultExtractOptions returns the options used when none are configured.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		MaxRecursion: 0,
		MaxDepth:     DefaultMaxDepth,
	}
}

var reservedRootFields = map[string]struct{}{
	"apiVersion": {},
	"kind":       {},
	"metadata":   {},
}

// ExtractKind realizes the schema of a ResourceKind into a KindVersion.
func ExtractKind(rk ResourceKind, opts ExtractOptions) (KindVersion, error) {
	if rk.Schema == nil {
		return KindVersion{}, &UnsupportedTypeError{
			Resource: rk.String(),
			Type:     SchemaKindObject,
			Reason:   "no schema description registered",
		}
	}
	root, err := Extract(rk.String(), rk.Schema, rk.Definitions, opts)
	if err != nil {
		return KindVersion{}, err
	}
	return KindVersion{
		Version:            rk.Version,
		Served:             rk.Served,
		Storage:            rk.Storage,
		Deprecated:         rk.Deprecated,
		DeprecationWarning: rk.DeprecationWarning,
		Schema:             root,
		PrinterColumns:     rk.PrinterColumns,
		Scale:              rk.Scale,
	}, nil
}

// Extract realizes the declared root schema of a resource into a TypeSchema tree with every
// reference expanded and every union flattened. The resource string is only used for error context.
func Extract(resource string, desc SchemaDescriber, defs Definitions, opts ExtractOptions) (*TypeSchema, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	declared := desc.DescribeSchema()
	if declared.Kind != SchemaKindObject {
		return nil, &UnsupportedTypeError{
			Resource: resource,
			Type:     declared.Kind,
			Reason:   "root schema must be an object",
		}
	}
	spec := declared.Field("spec")
	if spec == nil || (spec.Kind != SchemaKindObject && spec.Kind != SchemaKindReference) {
		return nil, &UnsupportedTypeError{
			Resource: resource,
			Path:     ".spec",
			Type:     SchemaKindObject,
			Reason:   "root schema must declare a spec object",
		}
	}
	for _, f := range declared.Fields {
		if _, ok := reservedRootFields[f.Name]; ok {
			return nil, &UnsupportedTypeError{
				Resource: resource,
				Path:     "." + f.Name,
				Type:     f.Kind,
				Reason:   "field name is reserved for object metadata",
			}
		}
	}

	x := &extractor{
		resource: resource,
		defs:     defs,
		opts:     opts,
		stack:    make(map[string]int),
	}
	root, err := x.realize(declared, "", 1)
	if err != nil {
		var trunc *truncated
		if errors.As(err, &trunc) {
			return nil, &CyclicSchemaError{Resource: resource, Ref: trunc.ref, Bound: opts.MaxRecursion}
		}
		return nil, err
	}
	return root, nil
}

// truncated signals that a self-reference reached the recursion bound and the enclosing
// optional field has to be left out.
type truncated struct {
	ref string
}

func (t *truncated) Error() string {
	return fmt.Sprintf("reference '%s' truncated", t.ref)
}

type extractor struct {
	resource string
	defs     Definitions
	opts     ExtractOptions
	stack    map[string]int
}

func (x *extractor) unsupported(node TypeSchema, path, reason string) error {
	return &UnsupportedTypeError{Resource: x.resource, Path: path, Type: node.Kind, Reason: reason}
}

func (x *extractor) realize(node TypeSchema, path string, depth int) (*TypeSchema, error) {
	if depth > x.opts.MaxDepth {
		return nil, &SchemaTooLargeError{Resource: x.resource, Limit: "depth", Value: depth, Max: x.opts.MaxDepth}
	}

	var (
		out *TypeSchema
		err error
	)
	switch node.Kind {
	case SchemaKindScalar:
		out, err = x.scalar(node, path)
	case SchemaKindEnum:
		out, err = x.enum(node, path)
	case SchemaKindObject:
		out, err = x.object(node, path, depth)
	case SchemaKindArray, SchemaKindMap:
		out, err = x.collection(node, path, depth)
	case SchemaKindReference:
		return x.reference(node, path, depth)
	case SchemaKindUnion:
		out, err = x.union(node, path, depth)
	case SchemaKindAny:
		return nil, x.unsupported(node, path, "open-ended type has no structural schema")
	default:
		return nil, x.unsupported(node, path, fmt.Sprintf("unknown schema kind '%s'", node.Kind))
	}
	if err != nil {
		return nil, err
	}
	if out.Default != nil {
		if err := validateDefault(out); err != nil {
			return nil, &InvalidDefaultError{Resource: x.resource, Path: path, Default: out.Default, Err: err}
		}
	}
	return out, nil
}

func (x *extractor) scalar(node TypeSchema, path string) (*TypeSchema, error) {
	c := node.Constraints
	switch node.Scalar {
	case ScalarString:
		if c.Minimum != nil || c.Maximum != nil {
			return nil, x.unsupported(node, path, "numeric bounds on a string")
		}
		if c.Pattern != "" {
			if _, err := regexp.Compile(c.Pattern); err != nil {
				return nil, x.unsupported(node, path, fmt.Sprintf("invalid pattern: %v", err))
			}
		}
	case ScalarInteger, ScalarNumber:
		if c.Pattern != "" || c.MinLength != nil || c.MaxLength != nil {
			return nil, x.unsupported(node, path, "string constraints on a number")
		}
		if c.Minimum != nil && c.Maximum != nil && *c.Minimum > *c.Maximum {
			return nil, x.unsupported(node, path, "minimum is greater than maximum")
		}
	case ScalarBoolean:
		if c.Pattern != "" || c.MinLength != nil || c.MaxLength != nil || c.Minimum != nil || c.Maximum != nil {
			return nil, x.unsupported(node, path, "constraints on a boolean")
		}
	default:
		return nil, x.unsupported(node, path, fmt.Sprintf("unknown scalar type '%s'", node.Scalar))
	}
	if c.MinItems != nil || c.MaxItems != nil {
		return nil, x.unsupported(node, path, "item bounds on a scalar")
	}
	out := node
	out.Fields, out.Items, out.Variants = nil, nil, nil
	return &out, nil
}

func (x *extractor) enum(node TypeSchema, path string) (*TypeSchema, error) {
	if len(node.Constraints.Enum) == 0 {
		return nil, x.unsupported(node, path, "enum without values")
	}
	seen := make(map[string]struct{}, len(node.Constraints.Enum))
	for _, v := range node.Constraints.Enum {
		if _, ok := seen[v]; ok {
			return nil, x.unsupported(node, path, fmt.Sprintf("duplicate enum value '%s'", v))
		}
		seen[v] = struct{}{}
	}
	out := node
	out.Scalar = ScalarString
	out.Constraints.Enum = append([]string(nil), node.Constraints.Enum...)
	out.Fields, out.Items, out.Variants = nil, nil, nil
	return &out, nil
}

func (x *extractor) object(node TypeSchema, path string, depth int) (*TypeSchema, error) {
	out := node
	out.Fields = make([]TypeSchema, 0, len(node.Fields))
	out.Items, out.Variants = nil, nil
	seen := make(map[string]struct{}, len(node.Fields))
	for _, f := range node.Fields {
		fieldPath := path + "." + f.Name
		if f.Name == "" {
			return nil, x.unsupported(f, fieldPath, "object field without a name")
		}
		if _, ok := seen[f.Name]; ok {
			return nil, x.unsupported(f, fieldPath, "duplicate field name")
		}
		seen[f.Name] = struct{}{}
		realized, err := x.realize(f, fieldPath, depth+1)
		if err != nil {
			var trunc *truncated
			if errors.As(err, &trunc) {
				if !IsRequired(f) {
					continue
				}
				return nil, &CyclicSchemaError{Resource: x.resource, Path: fieldPath, Ref: trunc.ref, Bound: x.opts.MaxRecursion}
			}
			return nil, err
		}
		out.Fields = append(out.Fields, *realized)
	}
	return &out, nil
}

func (x *extractor) collection(node TypeSchema, path string, depth int) (*TypeSchema, error) {
	if node.Items == nil {
		if node.Kind == SchemaKindArray {
			return nil, x.unsupported(node, path, "array without an item type")
		}
		return nil, x.unsupported(node, path, "map without a value type")
	}
	if node.Kind == SchemaKindMap && (node.Constraints.MinItems != nil || node.Constraints.MaxItems != nil) {
		return nil, x.unsupported(node, path, "item bounds on a map")
	}
	itemPath := path + "[*]"
	if node.Kind == SchemaKindMap {
		itemPath = path + ".*"
	}
	items, err := x.realize(*node.Items, itemPath, depth+1)
	if err != nil {
		return nil, err
	}
	out := node
	out.Items = items
	out.Fields, out.Variants = nil, nil
	return &out, nil
}

func (x *extractor) reference(node TypeSchema, path string, depth int) (*TypeSchema, error) {
	def, ok := x.defs[node.Ref]
	if !ok {
		return nil, x.unsupported(node, path, fmt.Sprintf("reference to unknown definition '%s'", node.Ref))
	}
	if active := x.stack[node.Ref]; active > 0 {
		if x.opts.MaxRecursion <= 0 {
			return nil, &CyclicSchemaError{Resource: x.resource, Path: path, Ref: node.Ref, Bound: x.opts.MaxRecursion}
		}
		if active > x.opts.MaxRecursion {
			return nil, &truncated{ref: node.Ref}
		}
	}

	// The referencing field keeps its own name and field-level settings.
	expanded := def
	expanded.Name = node.Name
	expanded.Required = node.Required
	expanded.Nullable = node.Nullable || def.Nullable
	if node.Description != "" {
		expanded.Description = node.Description
	}
	if node.Default != nil {
		expanded.Default = node.Default
	}

	x.stack[node.Ref]++
	defer func() { x.stack[node.Ref]-- }()
	return x.realize(expanded, path, depth)
}

// ignoreDescriptions compares realized nodes by everything that reaches the validation schema.
var ignoreDescriptions = cmpopts.IgnoreFields(TypeSchema{}, "Description")

func (x *extractor) union(node TypeSchema, path string, depth int) (*TypeSchema, error) {
	if node.Discriminator == "" {
		return nil, x.unsupported(node, path, "polymorphic type without a discriminator")
	}
	if len(node.Variants) == 0 {
		return nil, x.unsupported(node, path, "union without variants")
	}

	values := make([]string, 0, len(node.Variants))
	fields := make([]TypeSchema, 0)
	byName := make(map[string]int)
	for _, v := range node.Variants {
		variantPath := fmt.Sprintf("%s(%s)", path, v.Name)
		if v.Name == "" {
			return nil, x.unsupported(v, variantPath, "union variant without a name")
		}
		for _, seen := range values {
			if seen == v.Name {
				return nil, x.unsupported(v, variantPath, "duplicate union variant")
			}
		}
		values = append(values, v.Name)

		variant := v
		variant.Name = ""
		variant.Required = true
		realized, err := x.realize(variant, variantPath, depth)
		if err != nil {
			return nil, err
		}
		if realized.Kind != SchemaKindObject {
			return nil, x.unsupported(v, variantPath, "union variant must be an object")
		}
		for _, f := range realized.Fields {
			if f.Name == node.Discriminator {
				return nil, x.unsupported(f, variantPath+"."+f.Name, "variant field shadows the discriminator")
			}
			f.Required = false
			if i, ok := byName[f.Name]; ok {
				if !cmp.Equal(fields[i], f, ignoreDescriptions) {
					return nil, x.unsupported(f, variantPath+"."+f.Name, "variants declare the same field with different schemas")
				}
				continue
			}
			byName[f.Name] = len(fields)
			fields = append(fields, f)
		}
	}

	discriminator := TypeSchema{
		Name:        node.Discriminator,
		Kind:        SchemaKindEnum,
		Scalar:      ScalarString,
		Required:    true,
		Description: "Discriminates the variant of " + node.Name + ".",
		Constraints: Constraints{Enum: values},
	}
	return &TypeSchema{
		Name:        node.Name,
		Kind:        SchemaKindObject,
		Description: node.Description,
		Required:    node.Required,
		Nullable:    node.Nullable,
		Default:     node.Default,
		Fields:      append([]TypeSchema{discriminator}, fields...),
	}, nil
}

// IsRequired reports whether a field must be present: it is marked required and is neither nullable nor defaulted.
func IsRequired(t TypeSchema) bool {
	return t.Required && !t.Nullable && t.Default == nil
}

// RequiredFields returns the names of the required fields of an object, in declaration order.
func RequiredFields(t *TypeSchema) []string {
	required := make([]string, 0)
	for _, f := range t.Fields {
		if IsRequired(f) {
			required = append(required, f.Name)
		}
	}
	return required
}

func validateDefault(t *TypeSchema) error {
	raw, err := json.Marshal(t.Default)
	if err != nil {
		return err
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return err
	}
	return ToOpenAPI(t).VisitJSON(value)
}

// ToOpenAPI converts a realized TypeSchema into a kin-openapi schema.
func ToOpenAPI(t *TypeSchema) *openapi3.Schema {
	s := &openapi3.Schema{
		Description: t.Description,
		Nullable:    t.Nullable,
	}
	c := t.Constraints
	switch t.Kind {
	case SchemaKindScalar:
		s.Type = &openapi3.Types{string(t.Scalar)}
		s.Min = c.Minimum
		s.Max = c.Maximum
		s.Pattern = c.Pattern
		if c.MinLength != nil {
			s.MinLength = uint64(*c.MinLength)
		}
		if c.MaxLength != nil {
			maxLength := uint64(*c.MaxLength)
			s.MaxLength = &maxLength
		}
	case SchemaKindEnum:
		s.Type = &openapi3.Types{openapi3.TypeString}
		s.Enum = make([]any, len(c.Enum))
		for i, v := range c.Enum {
			s.Enum[i] = v
		}
	case SchemaKindObject:
		s.Type = &openapi3.Types{openapi3.TypeObject}
		s.Properties = make(openapi3.Schemas, len(t.Fields))
		for i := range t.Fields {
			s.Properties[t.Fields[i].Name] = openapi3.NewSchemaRef("", ToOpenAPI(&t.Fields[i]))
		}
		if required := RequiredFields(t); len(required) > 0 {
			s.Required = required
		}
	case SchemaKindArray:
		s.Type = &openapi3.Types{openapi3.TypeArray}
		if t.Items != nil {
			s.Items = openapi3.NewSchemaRef("", ToOpenAPI(t.Items))
		}
		if c.MinItems != nil {
			s.MinItems = uint64(*c.MinItems)
		}
		if c.MaxItems != nil {
			maxItems := uint64(*c.MaxItems)
			s.MaxItems = &maxItems
		}
	case SchemaKindMap:
		s.Type = &openapi3.Types{openapi3.TypeObject}
		if t.Items != nil {
			s.AdditionalProperties = openapi3.AdditionalProperties{Schema: openapi3.NewSchemaRef("", ToOpenAPI(t.Items))}
		}
	}
	return s
}
