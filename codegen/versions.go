package codegen

import (
	"sort"

	k8sversion "k8s.io/apimachinery/pkg/version"
)

// CompareVersions orders two version names by Kubernetes version priority.
// It returns a negative number when a has the higher priority and must be listed first:
// GA before beta before alpha, higher numbers first within a track,
// and names that are not Kubernetes-like last, in lexicographic order.
func CompareVersions(a, b string) int {
	return -k8sversion.CompareKubeAwareVersionStrings(a, b)
}

// SortVersions sorts versions in place from the highest to the lowest priority.
func SortVersions(versions []KindVersion) {
	sort.SliceStable(versions, func(i, j int) bool {
		return CompareVersions(versions[i].Version, versions[j].Version) < 0
	})
}

// StorageVersion returns the single storage version of a kind.
// It fails with a VersionConflictError when there is none or more than one.
func StorageVersion(kind Kind) (*KindVersion, error) {
	var (
		storage *KindVersion
		names   []string
	)
	versions := kind.Versions()
	for i := range versions {
		names = append(names, versions[i].Version)
		if !versions[i].Storage {
			continue
		}
		if storage != nil {
			return nil, &VersionConflictError{
				Resource: kindName(kind),
				Versions: []string{storage.Version, versions[i].Version},
				Reason:   "more than one storage version",
			}
		}
		storage = &versions[i]
	}
	if storage == nil {
		return nil, &VersionConflictError{
			Resource: kindName(kind),
			Versions: names,
			Reason:   "no storage version",
		}
	}
	return storage, nil
}

func kindName(kind Kind) string {
	props := kind.Properties()
	return props.Kind + "." + props.Group
}
