package codegen

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Scope is the scope of a resource, either Namespaced or Cluster.
type Scope string

const (
	ScopeNamespaced = Scope("Namespaced")
	ScopeCluster    = Scope("Cluster")
)

// SchemaDescriber is implemented by every compiled-in resource kind version.
// DescribeSchema returns the declared root type: an object with a "spec" field and an optional "status" field.
type SchemaDescriber interface {
	DescribeSchema() TypeSchema
}

// SchemaDescriberFunc adapts a function to a SchemaDescriber.
type SchemaDescriberFunc func() TypeSchema

func (f SchemaDescriberFunc) DescribeSchema() TypeSchema {
	return f()
}

// PrinterColumn is an additional column shown by kubectl get.
type PrinterColumn struct {
	Name        string
	Type        string
	Format      string
	Description string
	Priority    int32
	JSONPath    string
}

// ScaleSubresource configures the scale subresource of a kind version.
type ScaleSubresource struct {
	SpecReplicasPath   string
	StatusReplicasPath string
	LabelSelectorPath  string
}

// ResourceKind is one version of a custom resource as registered by the controller.
// Several ResourceKinds with the same group and kind are merged into a single CRD.
type ResourceKind struct {
	Group      string
	Version    string
	Kind       string
	Scope      Scope
	Plural     string
	Singular   string
	ShortNames []string
	Categories []string
	Served     bool
	Storage    bool
	// Deprecated marks the version deprecated; DeprecationWarning overrides the API server's default warning.
	Deprecated         bool
	DeprecationWarning string
	Schema             SchemaDescriber
	// Definitions resolves the reference nodes in the declared schema.
	Definitions    Definitions
	PrinterColumns []PrinterColumn
	Scale          *ScaleSubresource
}

// GroupKind returns the group and kind of the resource.
func (r ResourceKind) GroupKind() schema.GroupKind {
	return schema.GroupKind{Group: r.Group, Kind: r.Kind}
}

// GroupVersionKind returns the fully-qualified kind of the resource.
func (r ResourceKind) GroupVersionKind() schema.GroupVersionKind {
	return schema.GroupVersionKind{Group: r.Group, Version: r.Version, Kind: r.Kind}
}

// SingularName returns Singular, defaulting to the lowercased kind.
func (r ResourceKind) SingularName() string {
	if r.Singular != "" {
		return r.Singular
	}
	return strings.ToLower(r.Kind)
}

// String identifies the resource in error messages, e.g. "TheLeague.bexxmodd.com/v1alpha1".
func (r ResourceKind) String() string {
	return fmt.Sprintf("%s.%s/%s", r.Kind, r.Group, r.Version)
}

// Kind is a custom resource kind with all of its versions, ready for CRD generation.
type Kind interface {
	Name() string
	Properties() KindProperties
	Versions() []KindVersion
	Version(version string) *KindVersion
}

// KindProperties are the version-independent properties of a Kind.
type KindProperties struct {
	Kind       string
	Group      string
	Plural     string
	Singular   string
	ShortNames []string
	Categories []string
	Scope      Scope
}

// KindVersion is a single served version of a Kind with its realized schema.
type KindVersion struct {
	Version            string
	Served             bool
	Storage            bool
	Deprecated         bool
	DeprecationWarning string
	// Schema is the realized root schema (an object with spec and optional status).
	Schema         *TypeSchema
	PrinterColumns []PrinterColumn
	Scale          *ScaleSubresource
}

// AnyKind is the default Kind implementation.
type AnyKind struct {
	Props       KindProperties
	AllVersions []KindVersion
}

func (a *AnyKind) Name() string {
	return a.Props.Kind
}

func (a *AnyKind) Properties() KindProperties {
	return a.Props
}

func (a *AnyKind) Versions() []KindVersion {
	return a.AllVersions
}

func (a *AnyKind) Version(v string) *KindVersion {
	for i := 0; i < len(a.AllVersions); i++ {
		if v == a.AllVersions[i].Version {
			return &a.AllVersions[i]
		}
	}
	return nil
}

// String identifies the kind in error messages, e.g. "TheLeague.bexxmodd.com".
func (a *AnyKind) String() string {
	return fmt.Sprintf("%s.%s", a.Props.Kind, a.Props.Group)
}
