package manifests

import (
	"github.com/grafana/codejen"

	"github.com/bexxmodd/theleague/codegen"
	"github.com/bexxmodd/theleague/codegen/jennies"
)

const (
	ManagerRoleName        = "manager-role"
	LeaderElectionRoleName = "leader-election-role"
)

// CRDGenerator returns the jennies producing one CRD manifest per kind.
func CRDGenerator(encoder jennies.CRDOutputEncoder, extension, prefix string, limits jennies.Limits) *codejen.JennyList[codegen.Kind] {
	g := codejen.JennyListWithNamer(namerFunc)
	g.Append(jennies.CRDGenerator(encoder, extension, prefix, limits))
	return g
}

// RBACGenerator returns the jennies producing the controller's RBAC manifests.
// The leader election and user-facing roles are rendered only when their input is set.
func RBACGenerator(encoder jennies.ManifestOutputEncoder) *codejen.JennyList[*jennies.RBACInput] {
	g := codejen.JennyListWithNamer(func(in *jennies.RBACInput) string {
		return in.Options.AppName
	})
	g.Append(
		&jennies.ServiceAccountGenerator{Encoder: encoder},
		&jennies.ManagerRoleGenerator{Encoder: encoder},
		&jennies.LeaderElectionGenerator{Encoder: encoder},
		&jennies.UserRolesGenerator{Encoder: encoder},
	)
	return g
}

func namerFunc(k codegen.Kind) string {
	if k == nil {
		return "nil"
	}
	return k.Properties().Kind
}
