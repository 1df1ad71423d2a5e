package access

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"

	"github.com/bexxmodd/theleague/codegen"
)

// clusterScoped lists the built-in kinds that are not namespaced.
var clusterScoped = map[string]struct{}{
	"APIService":                       {},
	"CertificateSigningRequest":        {},
	"ClusterRole":                      {},
	"ClusterRoleBinding":               {},
	"ClusterTrustBundle":               {},
	"ComponentStatus":                  {},
	"CSIDriver":                        {},
	"CSINode":                          {},
	"CustomResourceDefinition":         {},
	"DeviceClass":                      {},
	"FlowSchema":                       {},
	"IngressClass":                     {},
	"IPAddress":                        {},
	"MutatingAdmissionPolicy":          {},
	"MutatingAdmissionPolicyBinding":   {},
	"MutatingWebhookConfiguration":     {},
	"Namespace":                        {},
	"Node":                             {},
	"PersistentVolume":                 {},
	"PriorityClass":                    {},
	"PriorityLevelConfiguration":       {},
	"ResourceSlice":                    {},
	"RuntimeClass":                     {},
	"SelfSubjectAccessReview":          {},
	"SelfSubjectReview":                {},
	"SelfSubjectRulesReview":           {},
	"ServiceCIDR":                      {},
	"StorageClass":                     {},
	"StorageVersion":                   {},
	"StorageVersionMigration":          {},
	"SubjectAccessReview":              {},
	"TokenReview":                      {},
	"ValidatingAdmissionPolicy":        {},
	"ValidatingAdmissionPolicyBinding": {},
	"ValidatingWebhookConfiguration":   {},
	"VolumeAttachment":                 {},
	"VolumeAttributesClass":            {},
}

// irregularPlurals holds the built-in kinds whose resource name cannot be guessed from the kind.
var irregularPlurals = map[string]string{
	"Endpoints": "endpoints",
}

// ignoredKinds are registered in every API group but are not resources.
var ignoredKinds = map[string]struct{}{
	"WatchEvent":      {},
	"Status":          {},
	"APIGroup":        {},
	"APIGroupList":    {},
	"APIResourceList": {},
	"APIVersions":     {},
}

// Mapping is the resolved resource of a declared kind.
type Mapping struct {
	Group    string
	Version  string
	Kind     string
	Resource string
	Scope    codegen.Scope
}

type registration struct {
	gvk      schema.GroupVersionKind
	plural   string
	singular string
	scope    codegen.Scope
}

// Registry knows every kind access may be declared for: the built-in API kinds and the
// custom resources the generator produces CRDs for. Lookups go through a meta.RESTMapper.
type Registry struct {
	registrations []registration
	groupVersions []schema.GroupVersion
	seenGV        map[schema.GroupVersion]struct{}
	mapper        meta.RESTMapper
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		registrations: make([]registration, 0),
		groupVersions: make([]schema.GroupVersion, 0),
		seenGV:        make(map[schema.GroupVersion]struct{}),
	}
}

// NewBuiltinRegistry returns a Registry holding every kind of the client-go scheme and the
// apiextensions.k8s.io/v1 kinds.
func NewBuiltinRegistry() *Registry {
	s := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(s))
	utilruntime.Must(apiextensionsv1.AddToScheme(s))
	r := NewRegistry()
	r.AddScheme(s)
	return r
}

// AddScheme registers the external kinds of a runtime.Scheme, in the scheme's version priority order.
func (r *Registry) AddScheme(s *runtime.Scheme) {
	known := s.AllKnownTypes()
	for _, gv := range s.PrioritizedVersionsAllGroups() {
		if gv.Version == runtime.APIVersionInternal {
			continue
		}
		kinds := make([]string, 0)
		for gvk := range known {
			if gvk.GroupVersion() == gv && isResourceKind(gvk.Kind) {
				kinds = append(kinds, gvk.Kind)
			}
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			gvk := gv.WithKind(kind)
			plural, singular := meta.UnsafeGuessKindToResource(gvk)
			if p, ok := irregularPlurals[kind]; ok {
				plural = gv.WithResource(p)
			}
			scope := codegen.ScopeNamespaced
			if _, ok := clusterScoped[kind]; ok {
				scope = codegen.ScopeCluster
			}
			r.add(registration{gvk: gvk, plural: plural.Resource, singular: singular.Resource, scope: scope})
		}
	}
}

// AddResource registers a custom resource version.
func (r *Registry) AddResource(rk codegen.ResourceKind) {
	plural := rk.Plural
	if plural == "" {
		plural = strings.ToLower(rk.Kind) + "s"
	}
	scope := rk.Scope
	if scope == "" {
		scope = codegen.ScopeNamespaced
	}
	r.add(registration{
		gvk:      rk.GroupVersionKind(),
		plural:   plural,
		singular: rk.SingularName(),
		scope:    scope,
	})
}

func (r *Registry) add(reg registration) {
	r.registrations = append(r.registrations, reg)
	gv := reg.gvk.GroupVersion()
	if _, ok := r.seenGV[gv]; !ok {
		r.seenGV[gv] = struct{}{}
		r.groupVersions = append(r.groupVersions, gv)
	}
	r.mapper = nil
}

// Mapper returns a RESTMapper over everything registered so far.
func (r *Registry) Mapper() meta.RESTMapper {
	if r.mapper != nil {
		return r.mapper
	}
	m := meta.NewDefaultRESTMapper(append([]schema.GroupVersion(nil), r.groupVersions...))
	for _, reg := range r.registrations {
		scope := meta.RESTScopeNamespace
		if reg.scope == codegen.ScopeCluster {
			scope = meta.RESTScopeRoot
		}
		gv := reg.gvk.GroupVersion()
		m.AddSpecific(reg.gvk, gv.WithResource(reg.plural), gv.WithResource(reg.singular), scope)
	}
	r.mapper = m
	return m
}

// Lookup resolves a group and kind to its resource and scope.
// The second return value is false when nothing is registered for the kind.
func (r *Registry) Lookup(group, kind string) (Mapping, bool, error) {
	mapping, err := r.Mapper().RESTMapping(schema.GroupKind{Group: group, Kind: kind})
	if err != nil {
		if meta.IsNoMatchError(err) {
			return Mapping{}, false, nil
		}
		var ambiguous *meta.AmbiguousKindError
		if errors.As(err, &ambiguous) {
			return Mapping{}, false, fmt.Errorf("kind %s in group %q is ambiguous: %w", kind, group, err)
		}
		return Mapping{}, false, err
	}
	scope := codegen.ScopeNamespaced
	if mapping.Scope.Name() == meta.RESTScopeNameRoot {
		scope = codegen.ScopeCluster
	}
	return Mapping{
		Group:    mapping.GroupVersionKind.Group,
		Version:  mapping.GroupVersionKind.Version,
		Kind:     mapping.GroupVersionKind.Kind,
		Resource: mapping.Resource.Resource,
		Scope:    scope,
	}, true, nil
}

func isResourceKind(kind string) bool {
	if _, ok := ignoredKinds[kind]; ok {
		return false
	}
	return !strings.HasSuffix(kind, "List") && !strings.HasSuffix(kind, "Options")
}
