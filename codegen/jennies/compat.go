package jennies

import (
	"fmt"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	sigsyaml "sigs.k8s.io/yaml"
)

// RemovedServedVersions compares a previously generated CRD with a newly generated one and
// returns the versions that were served before and are missing now, in their previous order.
// Removing a served version breaks clients still using it, so callers surface these as warnings.
func RemovedServedVersions(previous, generated []byte) ([]string, error) {
	prev := apiextensionsv1.CustomResourceDefinition{}
	if err := sigsyaml.Unmarshal(previous, &prev); err != nil {
		return nil, fmt.Errorf("parsing previous CRD: %w", err)
	}
	next := apiextensionsv1.CustomResourceDefinition{}
	if err := sigsyaml.Unmarshal(generated, &next); err != nil {
		return nil, fmt.Errorf("parsing generated CRD: %w", err)
	}

	current := make(map[string]struct{}, len(next.Spec.Versions))
	for _, v := range next.Spec.Versions {
		current[v.Name] = struct{}{}
	}
	removed := make([]string, 0)
	for _, v := range prev.Spec.Versions {
		if !v.Served {
			continue
		}
		if _, ok := current[v.Name]; !ok {
			removed = append(removed, v.Name)
		}
	}
	return removed, nil
}
