package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func topLevelKeys(t *testing.T, data []byte) []string {
	t.Helper()
	keys := make([]string, 0)
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "-") {
			continue
		}
		key, _, found := strings.Cut(line, ":")
		require.True(t, found, line)
		keys = append(keys, key)
	}
	return keys
}

func TestEncodeYAML_KeyOrder(t *testing.T) {
	obj := map[string]any{
		"spec":       map[string]any{"b": 1, "a": 2},
		"zeta":       true,
		"kind":       "Widget",
		"data":       "x",
		"apiVersion": "league.io/v1",
		"status":     map[string]any{"ready": true},
		"metadata":   map[string]any{"name": "w", "creationTimestamp": nil},
	}
	out, err := EncodeYAML(obj)
	require.NoError(t, err)

	assert.Equal(t, []string{"apiVersion", "kind", "metadata", "data", "spec", "zeta"}, topLevelKeys(t, out))
	assert.NotContains(t, string(out), "creationTimestamp")
	assert.NotContains(t, string(out), "ready")
	assert.Less(t, strings.Index(string(out), "a: 2"), strings.Index(string(out), "b: 1"))
}

func TestEncodeYAML_TypedObject(t *testing.T) {
	role := &rbacv1.ClusterRole{
		TypeMeta:   metav1.TypeMeta{APIVersion: "rbac.authorization.k8s.io/v1", Kind: "ClusterRole"},
		ObjectMeta: metav1.ObjectMeta{Name: "manager-role"},
		Rules: []rbacv1.PolicyRule{{
			APIGroups: []string{""},
			Resources: []string{"events"},
			Verbs:     []string{"create", "patch"},
		}},
	}
	out, err := EncodeYAML(role)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), "apiVersion: rbac.authorization.k8s.io/v1\nkind: ClusterRole\nmetadata:\n  name: manager-role\nrules:\n"), string(out))
	assert.Contains(t, string(out), `- ""`)
	assert.NotContains(t, string(out), "creationTimestamp")

	again, err := EncodeYAML(role)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestEncodeYAML_Unencodable(t *testing.T) {
	_, err := EncodeYAML(map[string]any{"f": func() {}})
	assert.Error(t, err)
}
