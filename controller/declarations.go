// Package controller holds the API access of the league controller.
//
// Every client the controller constructs is declared here, next to the object type it is built for.
// The declarations are the only input of the RBAC generator, so a client that is not declared
// here has no permissions in the generated manifests.
package controller

import (
	"fmt"

	coordinationv1 "k8s.io/api/coordination/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/apiutil"

	leaguev1alpha1 "github.com/bexxmodd/theleague/apis/league/v1alpha1"
	"github.com/bexxmodd/theleague/codegen/access"
)

const (
	sourceLeague         = "controller/theleague"
	sourceStanding       = "controller/standing"
	sourceGameResult     = "controller/gameresult"
	sourceEvents         = "controller/events"
	sourceLeaderElection = "controller/leaderelection"
)

// clientAccess is the declared access of one typed client.
type clientAccess struct {
	source string
	object client.Object
	verbs  []access.Verb
	status []access.Verb
}

var managerClients = []clientAccess{{
	source: sourceLeague,
	object: &leaguev1alpha1.TheLeague{},
	verbs:  []access.Verb{access.VerbGet, access.VerbList, access.VerbWatch, access.VerbUpdate, access.VerbPatch},
	status: []access.Verb{access.VerbGet, access.VerbUpdate, access.VerbPatch},
}, {
	source: sourceStanding,
	object: &leaguev1alpha1.Standing{},
	verbs:  []access.Verb{access.VerbCreate, access.VerbDelete, access.VerbGet, access.VerbList, access.VerbPatch, access.VerbUpdate, access.VerbWatch},
	status: []access.Verb{access.VerbUpdate, access.VerbPatch},
}, {
	source: sourceGameResult,
	object: &leaguev1alpha1.GameResult{},
	verbs:  access.ReadVerbs,
}, {
	source: sourceEvents,
	object: &corev1.Event{},
	verbs:  []access.Verb{access.VerbCreate, access.VerbPatch},
}}

var leaderElectionClients = []clientAccess{{
	source: sourceLeaderElection,
	object: &coordinationv1.Lease{},
	verbs:  []access.Verb{access.VerbGet, access.VerbList, access.VerbWatch, access.VerbCreate, access.VerbUpdate, access.VerbPatch, access.VerbDelete},
}, {
	source: sourceLeaderElection,
	object: &corev1.Event{},
	verbs:  []access.Verb{access.VerbCreate, access.VerbPatch},
}}

// NewScheme returns the scheme the controller's clients are built with.
func NewScheme() *runtime.Scheme {
	s := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(s))
	utilruntime.Must(leaguev1alpha1.AddToScheme(s))
	return s
}

// Declarations returns the access of the controller's reconcilers.
func Declarations(s *runtime.Scheme) (*access.Declarations, error) {
	return declare(s, managerClients)
}

// LeaderElectionDeclarations returns the access the controller needs to hold its leader lease.
func LeaderElectionDeclarations(s *runtime.Scheme) (*access.Declarations, error) {
	return declare(s, leaderElectionClients)
}

func declare(s *runtime.Scheme, clients []clientAccess) (*access.Declarations, error) {
	decls := access.NewDeclarations()
	for _, c := range clients {
		gvk, err := apiutil.GVKForObject(c.object, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.source, err)
		}
		d := decls.Client(c.source, gvk.Group, gvk.Kind).Can(c.verbs...)
		if len(c.status) > 0 {
			d.Subresource("status", c.status...)
		}
	}
	return decls, nil
}
