// Package v1alpha1 contains the v1alpha1 API of the league controller: TheLeague and Standing in
// the bexxmodd.com group, and GameResult in the league.bexxmodd.com group.
package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

const (
	Group     = "bexxmodd.com"
	GameGroup = "league.bexxmodd.com"
	Version   = "v1alpha1"
)

var (
	// GroupVersion is group version used to register TheLeague and Standing.
	GroupVersion = schema.GroupVersion{Group: Group, Version: Version}

	// GameGroupVersion is group version used to register GameResult.
	GameGroupVersion = schema.GroupVersion{Group: GameGroup, Version: Version}

	// SchemeBuilder is used to add go types to the GroupVersionKind scheme.
	SchemeBuilder = &scheme.Builder{GroupVersion: GroupVersion}

	GameSchemeBuilder = &scheme.Builder{GroupVersion: GameGroupVersion}
)

// AddToScheme adds the types of both groups to the scheme.
func AddToScheme(s *runtime.Scheme) error {
	if err := SchemeBuilder.AddToScheme(s); err != nil {
		return err
	}
	return GameSchemeBuilder.AddToScheme(s)
}
