package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bexxmodd/theleague/codegen"
)

func TestRegistry_Builtins(t *testing.T) {
	r := NewBuiltinRegistry()
	tests := []struct {
		group    string
		kind     string
		resource string
		scope    codegen.Scope
	}{
		{group: "", kind: "Pod", resource: "pods", scope: codegen.ScopeNamespaced},
		{group: "", kind: "Event", resource: "events", scope: codegen.ScopeNamespaced},
		{group: "", kind: "Endpoints", resource: "endpoints", scope: codegen.ScopeNamespaced},
		{group: "", kind: "Namespace", resource: "namespaces", scope: codegen.ScopeCluster},
		{group: "coordination.k8s.io", kind: "Lease", resource: "leases", scope: codegen.ScopeNamespaced},
		{group: "networking.k8s.io", kind: "Ingress", resource: "ingresses", scope: codegen.ScopeNamespaced},
		{group: "networking.k8s.io", kind: "NetworkPolicy", resource: "networkpolicies", scope: codegen.ScopeNamespaced},
		{group: "rbac.authorization.k8s.io", kind: "ClusterRole", resource: "clusterroles", scope: codegen.ScopeCluster},
		{group: "apiextensions.k8s.io", kind: "CustomResourceDefinition", resource: "customresourcedefinitions", scope: codegen.ScopeCluster},
	}
	for _, test := range tests {
		t.Run(test.kind, func(t *testing.T) {
			m, found, err := r.Lookup(test.group, test.kind)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, test.resource, m.Resource)
			assert.Equal(t, test.scope, m.Scope)
		})
	}

	_, found, err := r.Lookup("", "PodList")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRegistry_Resources(t *testing.T) {
	r := NewRegistry()
	r.AddResource(codegen.ResourceKind{Group: "league.io", Version: "v1alpha1", Kind: "Widget"})
	r.AddResource(codegen.ResourceKind{Group: "league.io", Version: "v1beta1", Kind: "Widget"})
	r.AddResource(codegen.ResourceKind{Group: "league.io", Version: "v1", Kind: "Arena", Plural: "arenae", Scope: codegen.ScopeCluster})

	m, found, err := r.Lookup("league.io", "Widget")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "widgets", m.Resource)
	assert.Equal(t, codegen.ScopeNamespaced, m.Scope)

	m, found, err = r.Lookup("league.io", "Arena")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "arenae", m.Resource)
	assert.Equal(t, codegen.ScopeCluster, m.Scope)

	_, found, err = r.Lookup("league.io", "Gadget")
	require.NoError(t, err)
	assert.False(t, found)

	// Registering after a lookup rebuilds the mapper.
	r.AddResource(codegen.ResourceKind{Group: "league.io", Version: "v1", Kind: "Gadget"})
	_, found, err = r.Lookup("league.io", "Gadget")
	require.NoError(t, err)
	assert.True(t, found)
}
