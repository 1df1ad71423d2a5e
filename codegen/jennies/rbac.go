package jennies

import (
	"slices"

	"github.com/grafana/codejen"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/bexxmodd/theleague/codegen"
	"github.com/bexxmodd/theleague/codegen/access"
	"github.com/bexxmodd/theleague/codegen/rbac"
)

const (
	labelName      = "app.kubernetes.io/name"
	labelManagedBy = "app.kubernetes.io/managed-by"
	managedBy      = "kustomize"
)

// ManifestOutputEncoder is a function which marshals a Kubernetes object into a manifest.
type ManifestOutputEncoder func(any) ([]byte, error)

// RBACOptions names the RBAC objects and places them.
type RBACOptions struct {
	AppName                string
	ServiceAccountName     string
	ManagerRoleName        string
	LeaderElectionRoleName string
	// Namespace is written into subjects and namespaced objects. When empty it is left out,
	// so kustomize can set it.
	Namespace string
	// WatchNamespace moves the namespaced manager rules into a Role in this namespace.
	// When empty the controller watches all namespaces and the ClusterRole carries every rule.
	WatchNamespace string
}

// RBACInput is everything the RBAC jennies render.
type RBACInput struct {
	Options RBACOptions
	// Manager holds the rules synthesized from the controller's declared access.
	Manager *rbac.RuleSet
	// LeaderElection holds the leader election rules, or nil when leader election is disabled.
	LeaderElection *rbac.RuleSet
	// Kinds are the custom resources the user-facing roles grant access to. Empty disables those roles.
	Kinds []codegen.Kind
}

func (o RBACOptions) labels() map[string]string {
	return map[string]string{
		labelName:      o.AppName,
		labelManagedBy: managedBy,
	}
}

func (o RBACOptions) subjects() []rbacv1.Subject {
	return []rbacv1.Subject{{
		Kind:      rbacv1.ServiceAccountKind,
		Name:      o.ServiceAccountName,
		Namespace: o.Namespace,
	}}
}

func roleRef(kind, name string) rbacv1.RoleRef {
	return rbacv1.RoleRef{
		APIGroup: rbacv1.GroupName,
		Kind:     kind,
		Name:     name,
	}
}

var (
	clusterRoleType        = metav1.TypeMeta{APIVersion: rbacv1.SchemeGroupVersion.String(), Kind: "ClusterRole"}
	clusterRoleBindingType = metav1.TypeMeta{APIVersion: rbacv1.SchemeGroupVersion.String(), Kind: "ClusterRoleBinding"}
	roleType               = metav1.TypeMeta{APIVersion: rbacv1.SchemeGroupVersion.String(), Kind: "Role"}
	roleBindingType        = metav1.TypeMeta{APIVersion: rbacv1.SchemeGroupVersion.String(), Kind: "RoleBinding"}
)

// ManagerRoleGenerator renders the controller's role and its binding.
// With a watch namespace, namespaced rules go into a Role bound in that namespace,
// and only cluster-scoped rules stay in the ClusterRole.
type ManagerRoleGenerator struct {
	Encoder ManifestOutputEncoder
}

func (*ManagerRoleGenerator) JennyName() string {
	return "ManagerRoleGenerator"
}

func (g *ManagerRoleGenerator) Generate(in *RBACInput) (codejen.Files, error) {
	opts := in.Options
	clusterRules := in.Manager.Rules
	var namespaced []rbac.Rule
	if opts.WatchNamespace != "" {
		clusterRules = in.Manager.Scoped(codegen.ScopeCluster)
		namespaced = in.Manager.Scoped(codegen.ScopeNamespaced)
	}

	objects := []namedObject{{
		path: "role.yaml",
		obj: &rbacv1.ClusterRole{
			TypeMeta:   clusterRoleType,
			ObjectMeta: metav1.ObjectMeta{Name: opts.ManagerRoleName, Labels: opts.labels()},
			Rules:      rbac.PolicyRules(clusterRules),
		},
	}, {
		path: "role_binding.yaml",
		obj: &rbacv1.ClusterRoleBinding{
			TypeMeta:   clusterRoleBindingType,
			ObjectMeta: metav1.ObjectMeta{Name: opts.ManagerRoleName + "-binding", Labels: opts.labels()},
			RoleRef:    roleRef("ClusterRole", opts.ManagerRoleName),
			Subjects:   opts.subjects(),
		},
	}}
	if opts.WatchNamespace != "" {
		objects = append(objects, namedObject{
			path: "namespace_role.yaml",
			obj: &rbacv1.Role{
				TypeMeta:   roleType,
				ObjectMeta: metav1.ObjectMeta{Name: opts.ManagerRoleName, Namespace: opts.WatchNamespace, Labels: opts.labels()},
				Rules:      rbac.PolicyRules(namespaced),
			},
		}, namedObject{
			path: "namespace_role_binding.yaml",
			obj: &rbacv1.RoleBinding{
				TypeMeta:   roleBindingType,
				ObjectMeta: metav1.ObjectMeta{Name: opts.ManagerRoleName + "-binding", Namespace: opts.WatchNamespace, Labels: opts.labels()},
				RoleRef:    roleRef("Role", opts.ManagerRoleName),
				Subjects:   opts.subjects(),
			},
		})
	}
	return encodeAll(g.Encoder, g, objects)
}

// ServiceAccountGenerator renders the controller's ServiceAccount.
type ServiceAccountGenerator struct {
	Encoder ManifestOutputEncoder
}

func (*ServiceAccountGenerator) JennyName() string {
	return "ServiceAccountGenerator"
}

func (g *ServiceAccountGenerator) Generate(in *RBACInput) (*codejen.File, error) {
	sa := &corev1.ServiceAccount{
		TypeMeta: metav1.TypeMeta{APIVersion: corev1.SchemeGroupVersion.String(), Kind: "ServiceAccount"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      in.Options.ServiceAccountName,
			Namespace: in.Options.Namespace,
			Labels:    in.Options.labels(),
		},
	}
	data, err := g.Encoder(sa)
	if err != nil {
		return nil, err
	}
	return codejen.NewFile("service_account.yaml", data, g), nil
}

// LeaderElectionGenerator renders the namespaced leader election Role and its binding.
// It renders nothing when leader election is disabled.
type LeaderElectionGenerator struct {
	Encoder ManifestOutputEncoder
}

func (*LeaderElectionGenerator) JennyName() string {
	return "LeaderElectionGenerator"
}

func (g *LeaderElectionGenerator) Generate(in *RBACInput) (codejen.Files, error) {
	if in.LeaderElection == nil {
		return nil, nil
	}
	opts := in.Options
	return encodeAll(g.Encoder, g, []namedObject{{
		path: "leader_election_role.yaml",
		obj: &rbacv1.Role{
			TypeMeta:   roleType,
			ObjectMeta: metav1.ObjectMeta{Name: opts.LeaderElectionRoleName, Namespace: opts.Namespace, Labels: opts.labels()},
			Rules:      rbac.PolicyRules(in.LeaderElection.Rules),
		},
	}, {
		path: "leader_election_role_binding.yaml",
		obj: &rbacv1.RoleBinding{
			TypeMeta:   roleBindingType,
			ObjectMeta: metav1.ObjectMeta{Name: opts.LeaderElectionRoleName + "-binding", Namespace: opts.Namespace, Labels: opts.labels()},
			RoleRef:    roleRef("Role", opts.LeaderElectionRoleName),
			Subjects:   opts.subjects(),
		},
	}})
}

// UserRolesGenerator renders the admin, editor and viewer ClusterRoles that cluster
// administrators bind to users of the custom resources. The controller never uses them.
type UserRolesGenerator struct {
	Encoder ManifestOutputEncoder
}

func (*UserRolesGenerator) JennyName() string {
	return "UserRolesGenerator"
}

func (g *UserRolesGenerator) Generate(in *RBACInput) (codejen.Files, error) {
	if len(in.Kinds) == 0 {
		return nil, nil
	}
	roles := []struct {
		suffix string
		verbs  []string
	}{
		{suffix: "admin", verbs: []string{rbacv1.VerbAll}},
		{suffix: "editor", verbs: verbNames(access.Verbs, access.VerbDeleteCollection)},
		{suffix: "viewer", verbs: verbNames(access.ReadVerbs)},
	}
	opts := in.Options
	objects := make([]namedObject, 0, len(roles))
	for _, role := range roles {
		name := opts.AppName + "-" + role.suffix + "-role"
		objects = append(objects, namedObject{
			path: opts.AppName + "_" + role.suffix + "_role.yaml",
			obj: &rbacv1.ClusterRole{
				TypeMeta:   clusterRoleType,
				ObjectMeta: metav1.ObjectMeta{Name: name, Labels: opts.labels()},
				Rules:      userRules(in.Kinds, role.verbs),
			},
		})
	}
	return encodeAll(g.Encoder, g, objects)
}

func userRules(kinds []codegen.Kind, verbs []string) []rbacv1.PolicyRule {
	rules := make([]rbacv1.PolicyRule, 0, 2*len(kinds))
	for _, kind := range kinds {
		props := kind.Properties()
		rules = append(rules, rbacv1.PolicyRule{
			APIGroups: []string{props.Group},
			Resources: []string{props.Plural},
			Verbs:     verbs,
		})
		if hasStatus(kind) {
			rules = append(rules, rbacv1.PolicyRule{
				APIGroups: []string{props.Group},
				Resources: []string{props.Plural + "/status"},
				Verbs:     []string{"get"},
			})
		}
	}
	return rules
}

// verbNames keeps the canonical order of verbs, leaving out excluded ones.
func verbNames(verbs []access.Verb, excluded ...access.Verb) []string {
	names := make([]string, 0, len(verbs))
	for _, v := range verbs {
		if !slices.Contains(excluded, v) {
			names = append(names, string(v))
		}
	}
	return names
}

func hasStatus(kind codegen.Kind) bool {
	for _, v := range kind.Versions() {
		if v.Schema != nil && v.Schema.Field("status") != nil {
			return true
		}
	}
	return false
}

type namedObject struct {
	path string
	obj  any
}

func encodeAll(encoder ManifestOutputEncoder, jenny codejen.NamedJenny, objects []namedObject) (codejen.Files, error) {
	files := make(codejen.Files, 0, len(objects))
	for _, o := range objects {
		data, err := encoder(o.obj)
		if err != nil {
			return nil, err
		}
		files = append(files, *codejen.NewFile(o.path, data, jenny))
	}
	return files, nil
}
