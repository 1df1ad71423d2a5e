package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortVersions(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{{
		name: "tracks",
		in:   []string{"v1alpha1", "v1beta1", "v1"},
		want: []string{"v1", "v1beta1", "v1alpha1"},
	}, {
		name: "numeric within track",
		in:   []string{"v1beta1", "v2", "v1beta2", "v10", "v1alpha10", "v1alpha2"},
		want: []string{"v10", "v2", "v1beta2", "v1beta1", "v1alpha10", "v1alpha2"},
	}, {
		name: "non kube-like last",
		in:   []string{"foo", "v1alpha1", "bar"},
		want: []string{"v1alpha1", "bar", "foo"},
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			versions := make([]KindVersion, len(test.in))
			for i, v := range test.in {
				versions[i] = KindVersion{Version: v}
			}
			SortVersions(versions)
			got := make([]string, len(versions))
			for i, v := range versions {
				got[i] = v.Version
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestStorageVersion(t *testing.T) {
	kind := &AnyKind{
		Props: KindProperties{Kind: "Widget", Group: "example.com"},
		AllVersions: []KindVersion{
			{Version: "v1beta1", Storage: true},
			{Version: "v1alpha1"},
		},
	}
	storage, err := StorageVersion(kind)
	require.NoError(t, err)
	assert.Equal(t, "v1beta1", storage.Version)

	kind.AllVersions[1].Storage = true
	_, err = StorageVersion(kind)
	assert.Equal(t, "VersionConflictError", ErrorKind(err))

	kind.AllVersions[0].Storage = false
	kind.AllVersions[1].Storage = false
	_, err = StorageVersion(kind)
	assert.Equal(t, "VersionConflictError", ErrorKind(err))
}
