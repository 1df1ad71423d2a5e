package controller

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	rbacv1 "k8s.io/api/rbac/v1"
	"k8s.io/apimachinery/pkg/runtime"

	leaguev1alpha1 "github.com/bexxmodd/theleague/apis/league/v1alpha1"
	"github.com/bexxmodd/theleague/codegen"
	"github.com/bexxmodd/theleague/codegen/access"
	"github.com/bexxmodd/theleague/codegen/rbac"
)

func registry() *access.Registry {
	r := access.NewBuiltinRegistry()
	for _, rk := range leaguev1alpha1.Resources() {
		r.AddResource(rk)
	}
	return r
}

func TestDeclarations_ManagerRules(t *testing.T) {
	decls, err := Declarations(NewScheme())
	require.NoError(t, err)
	set, err := access.Collect(decls, registry())
	require.NoError(t, err)
	rules, err := rbac.Synthesize(set)
	require.NoError(t, err)

	want := []rbacv1.PolicyRule{
		{APIGroups: []string{""}, Resources: []string{"events"}, Verbs: []string{"create", "patch"}},
		{APIGroups: []string{"bexxmodd.com"}, Resources: []string{"standings"}, Verbs: []string{"get", "list", "watch", "create", "update", "patch", "delete"}},
		{APIGroups: []string{"bexxmodd.com"}, Resources: []string{"standings/status"}, Verbs: []string{"update", "patch"}},
		{APIGroups: []string{"bexxmodd.com"}, Resources: []string{"theleagues"}, Verbs: []string{"get", "list", "watch", "update", "patch"}},
		{APIGroups: []string{"bexxmodd.com"}, Resources: []string{"theleagues/status"}, Verbs: []string{"get", "update", "patch"}},
		{APIGroups: []string{"league.bexxmodd.com"}, Resources: []string{"gameresults"}, Verbs: []string{"get", "list", "watch"}},
	}
	if diff := cmp.Diff(want, rbac.PolicyRules(rules.Rules)); diff != "" {
		t.Errorf("manager rules mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, rules.Scoped(codegen.ScopeCluster))
}

func TestLeaderElectionDeclarations(t *testing.T) {
	decls, err := LeaderElectionDeclarations(NewScheme())
	require.NoError(t, err)
	set, err := access.Collect(decls, registry())
	require.NoError(t, err)
	rules, err := rbac.Synthesize(set)
	require.NoError(t, err)

	want := []rbacv1.PolicyRule{
		{APIGroups: []string{""}, Resources: []string{"events"}, Verbs: []string{"create", "patch"}},
		{APIGroups: []string{"coordination.k8s.io"}, Resources: []string{"leases"}, Verbs: []string{"get", "list", "watch", "create", "update", "patch", "delete"}},
	}
	if diff := cmp.Diff(want, rbac.PolicyRules(rules.Rules)); diff != "" {
		t.Errorf("leader election rules mismatch (-want +got):\n%s", diff)
	}
}

func TestDeclarations_UnregisteredType(t *testing.T) {
	_, err := Declarations(runtime.NewScheme())
	require.Error(t, err)
	assert.ErrorContains(t, err, sourceLeague)
}

func TestDeclarations_MissingCRD(t *testing.T) {
	decls, err := Declarations(NewScheme())
	require.NoError(t, err)
	_, err = access.Collect(decls, access.NewBuiltinRegistry())
	require.Error(t, err)
	assert.Equal(t, "MissingDeclarationError", codegen.ErrorKind(err))
}
