package jennies

import (
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/bexxmodd/theleague/codegen"
)

// validateNames checks the names of a kind against the rules the API server applies to CRDs.
func validateNames(resource string, props codegen.KindProperties) error {
	problems := validation.IsDNS1123Subdomain(props.Group)
	if !strings.Contains(props.Group, ".") {
		problems = append(problems, "group must contain at least one dot")
	}
	if len(problems) > 0 {
		return &codegen.InvalidNamingError{Resource: resource, Field: "group", Value: props.Group, Problems: problems}
	}
	if props.Kind == "" || strings.ToUpper(props.Kind[:1]) != props.Kind[:1] {
		return &codegen.InvalidNamingError{Resource: resource, Field: "kind", Value: props.Kind, Problems: []string{"kind must start with an upper case letter"}}
	}
	if problems := validation.IsDNS1035Label(strings.ToLower(props.Kind)); len(problems) > 0 {
		return &codegen.InvalidNamingError{Resource: resource, Field: "kind", Value: props.Kind, Problems: problems}
	}
	labels := []struct {
		field  string
		values []string
	}{
		{field: "plural", values: []string{props.Plural}},
		{field: "singular", values: []string{props.Singular}},
		{field: "short name", values: props.ShortNames},
		{field: "category", values: props.Categories},
	}
	for _, l := range labels {
		for _, v := range l.values {
			if problems := validation.IsDNS1035Label(v); len(problems) > 0 {
				return &codegen.InvalidNamingError{Resource: resource, Field: l.field, Value: v, Problems: problems}
			}
		}
	}
	if props.Scope != codegen.ScopeNamespaced && props.Scope != codegen.ScopeCluster {
		return &codegen.InvalidNamingError{Resource: resource, Field: "scope", Value: string(props.Scope), Problems: []string{"scope must be Namespaced or Cluster"}}
	}
	name := props.Plural + "." + props.Group
	if problems := validation.IsDNS1123Subdomain(name); len(problems) > 0 {
		return &codegen.InvalidNamingError{Resource: resource, Field: "name", Value: name, Problems: problems}
	}
	return nil
}

// validateVersionName checks a version name. Version names are lower case DNS-1035 labels.
func validateVersionName(resource, version string) error {
	if problems := validation.IsDNS1035Label(version); len(problems) > 0 {
		return &codegen.InvalidNamingError{Resource: resource, Field: "version", Value: version, Problems: problems}
	}
	return nil
}
