package jennies

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/grafana/codejen"
	apiextensions "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apiextschema "k8s.io/apiextensions-apiserver/pkg/apiserver/schema"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/bexxmodd/theleague/codegen"
)

// CRDOutputEncoder is a function which marshals an object into a desired output format
type CRDOutputEncoder func(any) ([]byte, error)

// Limits are the schema size limits enforced before a CRD is emitted.
type Limits struct {
	MaxDepth  int
	MaxFields int
	// MaxBytes bounds the encoded document. The API server stores objects in etcd,
	// which rejects requests above 1.5MiB.
	MaxBytes int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:  32,
		MaxFields: 4096,
		MaxBytes:  3 * 1024 * 1024 / 2,
	}
}

// CRDFileName returns the file name of a CRD, e.g. "league.bexxmodd_com.theleagues.yaml".
// An empty prefix is left out.
func CRDFileName(prefix, group, plural, extension string) string {
	name := fmt.Sprintf("%s.%s.%s", strings.ReplaceAll(group, ".", "_"), plural, extension)
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// CRDGenerator returns a jenny producing one CRD file per Kind.
func CRDGenerator(encoder CRDOutputEncoder, extension, prefix string, limits Limits) codejen.OneToOne[codegen.Kind] {
	return &crdGenerator{
		outputEncoder:   encoder,
		outputExtension: extension,
		prefix:          prefix,
		limits:          limits,
	}
}

type crdGenerator struct {
	outputEncoder   CRDOutputEncoder
	outputExtension string
	prefix          string
	limits          Limits
}

func (*crdGenerator) JennyName() string {
	return "CRD Generator"
}

func (c *crdGenerator) Generate(kind codegen.Kind) (*codejen.File, error) {
	crd, err := BuildCRD(kind, c.limits)
	if err != nil {
		return nil, err
	}
	contents, err := c.outputEncoder(crd)
	if err != nil {
		return nil, err
	}
	if c.limits.MaxBytes > 0 && len(contents) > c.limits.MaxBytes {
		return nil, &codegen.SchemaTooLargeError{
			Resource: crd.Name,
			Limit:    "encoded size in bytes",
			Value:    len(contents),
			Max:      c.limits.MaxBytes,
		}
	}
	props := kind.Properties()
	return codejen.NewFile(CRDFileName(c.prefix, props.Group, props.Plural, c.outputExtension), contents, c), nil
}

// BuildCRD builds the CustomResourceDefinition of a kind with all of its versions.
// It fails with an InvalidNamingError, VersionConflictError, SchemaTooLargeError or
// UnsupportedTypeError, and never returns a CRD the API server would reject as non-structural.
func BuildCRD(kind codegen.Kind, limits Limits) (*apiextensionsv1.CustomResourceDefinition, error) {
	props := kind.Properties()
	resource := props.Kind + "." + props.Group
	if err := validateNames(resource, props); err != nil {
		return nil, err
	}
	if len(kind.Versions()) == 0 {
		return nil, &codegen.VersionConflictError{Resource: resource, Reason: "kind has no versions"}
	}
	for _, ver := range kind.Versions() {
		if err := validateVersionName(resource, ver.Version); err != nil {
			return nil, err
		}
	}
	if _, err := codegen.StorageVersion(kind); err != nil {
		return nil, err
	}

	versions := make([]codegen.KindVersion, len(kind.Versions()))
	copy(versions, kind.Versions())
	codegen.SortVersions(versions)

	crd := &apiextensionsv1.CustomResourceDefinition{
		TypeMeta: metav1.TypeMeta{
			APIVersion: apiextensionsv1.SchemeGroupVersion.String(),
			Kind:       "CustomResourceDefinition",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: fmt.Sprintf("%s.%s", props.Plural, props.Group),
		},
		Spec: apiextensionsv1.CustomResourceDefinitionSpec{
			Group: props.Group,
			Scope: apiextensionsv1.ResourceScope(props.Scope),
			Names: apiextensionsv1.CustomResourceDefinitionNames{
				Kind:       props.Kind,
				ListKind:   props.Kind + "List",
				Plural:     props.Plural,
				Singular:   props.Singular,
				ShortNames: props.ShortNames,
				Categories: props.Categories,
			},
			Versions: make([]apiextensionsv1.CustomResourceDefinitionVersion, 0, len(versions)),
		},
	}
	for _, ver := range versions {
		v, err := KindVersionToCRDSpecVersion(ver, resource, limits)
		if err != nil {
			return nil, err
		}
		crd.Spec.Versions = append(crd.Spec.Versions, v)
	}
	return crd, nil
}

// KindVersionToCRDSpecVersion converts one realized version into a CRD version.
func KindVersionToCRDSpecVersion(kv codegen.KindVersion, resource string, limits Limits) (apiextensionsv1.CustomResourceDefinitionVersion, error) {
	if kv.Schema == nil {
		return apiextensionsv1.CustomResourceDefinitionVersion{}, &codegen.UnsupportedTypeError{
			Resource: resource,
			Type:     codegen.SchemaKindObject,
			Reason:   fmt.Sprintf("version %s has no schema", kv.Version),
		}
	}
	if limits.MaxDepth > 0 {
		if depth := kv.Schema.Depth(); depth > limits.MaxDepth {
			return apiextensionsv1.CustomResourceDefinitionVersion{}, &codegen.SchemaTooLargeError{
				Resource: resource, Version: kv.Version, Limit: "depth", Value: depth, Max: limits.MaxDepth,
			}
		}
	}
	if limits.MaxFields > 0 {
		if fields := kv.Schema.FieldCount(); fields > limits.MaxFields {
			return apiextensionsv1.CustomResourceDefinitionVersion{}, &codegen.SchemaTooLargeError{
				Resource: resource, Version: kv.Version, Limit: "field count", Value: fields, Max: limits.MaxFields,
			}
		}
	}

	openAPI, err := rootSchema(kv.Schema)
	if err != nil {
		return apiextensionsv1.CustomResourceDefinitionVersion{}, &codegen.UnsupportedTypeError{
			Resource: resource, Type: codegen.SchemaKindObject, Reason: err.Error(),
		}
	}
	if err := validateStructural(resource, kv.Version, openAPI); err != nil {
		return apiextensionsv1.CustomResourceDefinitionVersion{}, err
	}

	def := apiextensionsv1.CustomResourceDefinitionVersion{
		Name:       kv.Version,
		Served:     kv.Served,
		Storage:    kv.Storage,
		Deprecated: kv.Deprecated,
		Schema: &apiextensionsv1.CustomResourceValidation{
			OpenAPIV3Schema: openAPI,
		},
	}
	if kv.Deprecated && kv.DeprecationWarning != "" {
		def.DeprecationWarning = ptr.To(kv.DeprecationWarning)
	}

	if kv.Schema.Field("status") != nil || kv.Scale != nil {
		def.Subresources = &apiextensionsv1.CustomResourceSubresources{}
		if kv.Schema.Field("status") != nil {
			def.Subresources.Status = &apiextensionsv1.CustomResourceSubresourceStatus{}
		}
		if kv.Scale != nil {
			scale, err := scaleSubresource(resource, kv)
			if err != nil {
				return apiextensionsv1.CustomResourceDefinitionVersion{}, err
			}
			def.Subresources.Scale = scale
		}
	}

	if len(kv.PrinterColumns) > 0 {
		apc := make([]apiextensionsv1.CustomResourceColumnDefinition, len(kv.PrinterColumns))
		for i, col := range kv.PrinterColumns {
			column, err := printerColumn(resource, col)
			if err != nil {
				return apiextensionsv1.CustomResourceDefinitionVersion{}, err
			}
			apc[i] = column
		}
		def.AdditionalPrinterColumns = apc
	}
	return def, nil
}

var printerColumnTypes = map[string]struct{}{
	"integer": {},
	"number":  {},
	"string":  {},
	"boolean": {},
	"date":    {},
}

func printerColumn(resource string, col codegen.PrinterColumn) (apiextensionsv1.CustomResourceColumnDefinition, error) {
	path := strings.TrimSpace(col.JSONPath)
	if path != "" && path[0] != '.' {
		path = "." + path
	}
	if _, ok := printerColumnTypes[col.Type]; !ok {
		return apiextensionsv1.CustomResourceColumnDefinition{}, &codegen.UnsupportedTypeError{
			Resource: resource,
			Path:     path,
			Type:     codegen.SchemaKind(col.Type),
			Reason:   fmt.Sprintf("printer column '%s' must be of type integer, number, string, boolean or date", col.Name),
		}
	}
	if col.Name == "" || path == "" {
		return apiextensionsv1.CustomResourceColumnDefinition{}, &codegen.UnsupportedTypeError{
			Resource: resource,
			Path:     path,
			Type:     codegen.SchemaKind(col.Type),
			Reason:   "printer column needs a name and a JSONPath",
		}
	}
	return apiextensionsv1.CustomResourceColumnDefinition{
		Name:        col.Name,
		Type:        col.Type,
		Format:      col.Format,
		Description: col.Description,
		Priority:    col.Priority,
		JSONPath:    path,
	}, nil
}

func scaleSubresource(resource string, kv codegen.KindVersion) (*apiextensionsv1.CustomResourceSubresourceScale, error) {
	s := kv.Scale
	invalid := func(path, reason string) error {
		return &codegen.UnsupportedTypeError{Resource: resource, Path: path, Type: codegen.SchemaKindScalar, Reason: reason}
	}
	if !strings.HasPrefix(s.SpecReplicasPath, ".spec.") {
		return nil, invalid(s.SpecReplicasPath, "scale spec replicas path must be under .spec")
	}
	if !strings.HasPrefix(s.StatusReplicasPath, ".status.") {
		return nil, invalid(s.StatusReplicasPath, "scale status replicas path must be under .status")
	}
	if kv.Schema.Field("status") == nil {
		return nil, invalid(s.StatusReplicasPath, "scale subresource requires a status")
	}
	scale := &apiextensionsv1.CustomResourceSubresourceScale{
		SpecReplicasPath:   s.SpecReplicasPath,
		StatusReplicasPath: s.StatusReplicasPath,
	}
	if s.LabelSelectorPath != "" {
		scale.LabelSelectorPath = ptr.To(s.LabelSelectorPath)
	}
	return scale, nil
}

func rootSchema(root *codegen.TypeSchema) (*apiextensionsv1.JSONSchemaProps, error) {
	props, err := toJSONSchemaProps(root)
	if err != nil {
		return nil, err
	}
	props.Properties["apiVersion"] = apiextensionsv1.JSONSchemaProps{
		Type: "string",
		Description: "APIVersion defines the versioned schema of this representation of an object. " +
			"Servers should convert recognized schemas to the latest internal value, and may reject unrecognized values.",
	}
	props.Properties["kind"] = apiextensionsv1.JSONSchemaProps{
		Type: "string",
		Description: "Kind is a string value representing the REST resource this object represents. " +
			"Servers may infer this from the endpoint the client submits requests to.",
	}
	props.Properties["metadata"] = apiextensionsv1.JSONSchemaProps{Type: "object"}
	return props, nil
}

func toJSONSchemaProps(t *codegen.TypeSchema) (*apiextensionsv1.JSONSchemaProps, error) {
	c := t.Constraints
	props := &apiextensionsv1.JSONSchemaProps{
		Description: t.Description,
		Nullable:    t.Nullable,
	}
	if t.Default != nil {
		raw, err := json.Marshal(t.Default)
		if err != nil {
			return nil, fmt.Errorf("default of '%s' cannot be encoded: %w", t.Name, err)
		}
		props.Default = &apiextensionsv1.JSON{Raw: raw}
	}

	switch t.Kind {
	case codegen.SchemaKindScalar:
		props.Type = string(t.Scalar)
		props.Format = t.Format
		props.Minimum = c.Minimum
		props.Maximum = c.Maximum
		props.MinLength = c.MinLength
		props.MaxLength = c.MaxLength
		props.Pattern = c.Pattern
	case codegen.SchemaKindEnum:
		props.Type = "string"
		props.Enum = make([]apiextensionsv1.JSON, len(c.Enum))
		for i, v := range c.Enum {
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			props.Enum[i] = apiextensionsv1.JSON{Raw: raw}
		}
	case codegen.SchemaKindObject:
		props.Type = "object"
		props.Properties = make(map[string]apiextensionsv1.JSONSchemaProps, len(t.Fields))
		for i := range t.Fields {
			child, err := toJSONSchemaProps(&t.Fields[i])
			if err != nil {
				return nil, err
			}
			props.Properties[t.Fields[i].Name] = *child
		}
		if required := codegen.RequiredFields(t); len(required) > 0 {
			sort.Strings(required)
			props.Required = required
		}
	case codegen.SchemaKindArray:
		items, err := toJSONSchemaProps(t.Items)
		if err != nil {
			return nil, err
		}
		props.Type = "array"
		props.Items = &apiextensionsv1.JSONSchemaPropsOrArray{Schema: items}
		props.MinItems = c.MinItems
		props.MaxItems = c.MaxItems
	case codegen.SchemaKindMap:
		values, err := toJSONSchemaProps(t.Items)
		if err != nil {
			return nil, err
		}
		props.Type = "object"
		props.AdditionalProperties = &apiextensionsv1.JSONSchemaPropsOrBool{Allows: true, Schema: values}
	default:
		return nil, fmt.Errorf("field '%s' has unrealized schema kind %s", t.Name, t.Kind)
	}
	return props, nil
}

func validateStructural(resource, version string, props *apiextensionsv1.JSONSchemaProps) error {
	internal := new(apiextensions.JSONSchemaProps)
	if err := apiextensionsv1.Convert_v1_JSONSchemaProps_To_apiextensions_JSONSchemaProps(props, internal, nil); err != nil {
		return fmt.Errorf("%s: converting %s schema to internal type: %w", resource, version, err)
	}
	structural, err := apiextschema.NewStructural(internal)
	if err != nil {
		return &codegen.UnsupportedTypeError{
			Resource: resource, Type: codegen.SchemaKindObject, Reason: fmt.Sprintf("version %s: %v", version, err),
		}
	}
	if errs := apiextschema.ValidateStructural(nil, structural); len(errs) > 0 {
		return &codegen.UnsupportedTypeError{
			Resource: resource,
			Path:     errs[0].Field,
			Type:     codegen.SchemaKindObject,
			Reason:   fmt.Sprintf("version %s is not a structural schema: %v", version, errs.ToAggregate()),
		}
	}
	return nil
}
