package codegen

// SchemaKind is the structural kind of a TypeSchema node.
type SchemaKind string

const (
	SchemaKindScalar    = SchemaKind("scalar")
	SchemaKindObject    = SchemaKind("object")
	SchemaKindArray     = SchemaKind("array")
	SchemaKindMap       = SchemaKind("map")
	SchemaKindEnum      = SchemaKind("enum")
	SchemaKindReference = SchemaKind("reference")
	// SchemaKindUnion is a polymorphic type with one of several variant shapes.
	// It is representable only when a Discriminator is set.
	SchemaKindUnion = SchemaKind("union")
	// SchemaKindAny is an open-ended type. It has no structural representation.
	SchemaKindAny = SchemaKind("any")
)

// ScalarType is the schema primitive of a scalar node.
type ScalarType string

const (
	ScalarString  = ScalarType("string")
	ScalarInteger = ScalarType("integer")
	ScalarNumber  = ScalarType("number")
	ScalarBoolean = ScalarType("boolean")
)

// Constraints are the validation constraints a node carries into the CRD schema.
type Constraints struct {
	Minimum   *float64
	Maximum   *float64
	MinLength *int64
	MaxLength *int64
	MinItems  *int64
	MaxItems  *int64
	Pattern   string
	// Enum holds the literal allowed values of an enum node.
	Enum []string
}

// TypeSchema is a single field or structure in a resource schema.
//
// A TypeSchema returned by a SchemaDescriber is a declaration and may contain reference nodes.
// The tree returned by Extract is realized: it contains no references, no unions and no cycles,
// and it is never modified afterwards.
type TypeSchema struct {
	// Name is the JSON field name. It is empty for the root, array items and map values.
	Name        string
	Kind        SchemaKind
	Scalar      ScalarType
	Format      string
	Description string
	Required    bool
	Nullable    bool
	Default     any
	Constraints Constraints
	// Fields are the properties of an object, in declaration order.
	Fields []TypeSchema
	// Items is the element type of an array or the value type of a map.
	Items *TypeSchema
	// Ref names an entry of Definitions for reference nodes.
	Ref string
	// Variants are the alternative shapes of a union. Each variant is an object whose Name
	// is the discriminator value selecting it.
	Variants      []TypeSchema
	Discriminator string
}

// Definitions is a table of named, reusable type declarations that reference nodes resolve against.
type Definitions map[string]TypeSchema

// Merge returns a new Definitions containing the entries of d and all others; later tables win.
func (d Definitions) Merge(others ...Definitions) Definitions {
	merged := make(Definitions, len(d))
	for k, v := range d {
		merged[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			merged[k] = v
		}
	}
	return merged
}

// Field returns the named child of an object node, or nil.
func (t *TypeSchema) Field(name string) *TypeSchema {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// Depth returns the nesting depth of the tree rooted at t. A leaf has depth 1.
func (t *TypeSchema) Depth() int {
	deepest := 0
	for i := range t.Fields {
		if d := t.Fields[i].Depth(); d > deepest {
			deepest = d
		}
	}
	if t.Items != nil {
		if d := t.Items.Depth(); d > deepest {
			deepest = d
		}
	}
	for i := range t.Variants {
		if d := t.Variants[i].Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// FieldCount returns the number of nodes below t, not counting t itself.
func (t *TypeSchema) FieldCount() int {
	count := 0
	for i := range t.Fields {
		count += 1 + t.Fields[i].FieldCount()
	}
	if t.Items != nil {
		count += 1 + t.Items.FieldCount()
	}
	for i := range t.Variants {
		count += 1 + t.Variants[i].FieldCount()
	}
	return count
}

// Declaration helpers. They keep the description tables in the apis packages readable.

func String(name string) TypeSchema {
	return TypeSchema{Name: name, Kind: SchemaKindScalar, Scalar: ScalarString}
}

func Integer(name string) TypeSchema {
	return TypeSchema{Name: name, Kind: SchemaKindScalar, Scalar: ScalarInteger}
}

func Number(name string) TypeSchema {
	return TypeSchema{Name: name, Kind: SchemaKindScalar, Scalar: ScalarNumber}
}

func Boolean(name string) TypeSchema {
	return TypeSchema{Name: name, Kind: SchemaKindScalar, Scalar: ScalarBoolean}
}

func Object(name string, fields ...TypeSchema) TypeSchema {
	return TypeSchema{Name: name, Kind: SchemaKindObject, Fields: fields}
}

func ArrayOf(name string, items TypeSchema) TypeSchema {
	items.Name = ""
	return TypeSchema{Name: name, Kind: SchemaKindArray, Items: &items}
}

func MapOf(name string, values TypeSchema) TypeSchema {
	values.Name = ""
	return TypeSchema{Name: name, Kind: SchemaKindMap, Items: &values}
}

func Enum(name string, values ...string) TypeSchema {
	return TypeSchema{Name: name, Kind: SchemaKindEnum, Constraints: Constraints{Enum: values}}
}

func Ref(name, definition string) TypeSchema {
	return TypeSchema{Name: name, Kind: SchemaKindReference, Ref: definition}
}

func Union(name, discriminator string, variants ...TypeSchema) TypeSchema {
	return TypeSchema{Name: name, Kind: SchemaKindUnion, Discriminator: discriminator, Variants: variants}
}

// Require returns a copy of t marked required.
func (t TypeSchema) Require() TypeSchema {
	t.Required = true
	return t
}

// Describe returns a copy of t with the given description.
func (t TypeSchema) Describe(description string) TypeSchema {
	t.Description = description
	return t
}

// WithDefault returns a copy of t with a default value.
func (t TypeSchema) WithDefault(v any) TypeSchema {
	t.Default = v
	return t
}

// WithFormat returns a copy of t with a format.
func (t TypeSchema) WithFormat(format string) TypeSchema {
	t.Format = format
	return t
}

// Between returns a copy of t with inclusive numeric bounds.
func (t TypeSchema) Between(minimum, maximum float64) TypeSchema {
	t.Constraints.Minimum = &minimum
	t.Constraints.Maximum = &maximum
	return t
}

// AtLeast returns a copy of t with an inclusive numeric lower bound.
func (t TypeSchema) AtLeast(minimum float64) TypeSchema {
	t.Constraints.Minimum = &minimum
	return t
}

// Matching returns a copy of t constrained by a regular expression.
func (t TypeSchema) Matching(pattern string) TypeSchema {
	t.Constraints.Pattern = pattern
	return t
}

// ItemCount returns a copy of t with inclusive bounds on the number of array items.
func (t TypeSchema) ItemCount(minItems, maxItems int64) TypeSchema {
	t.Constraints.MinItems = &minItems
	t.Constraints.MaxItems = &maxItems
	return t
}

// Length returns a copy of t with inclusive bounds on string length.
func (t TypeSchema) Length(minLength, maxLength int64) TypeSchema {
	t.Constraints.MinLength = &minLength
	t.Constraints.MaxLength = &maxLength
	return t
}
