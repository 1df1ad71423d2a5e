package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/bexxmodd/theleague/apis/meta"
	"github.com/bexxmodd/theleague/codegen"
)

// TheLeague holds the configuration of a league and its participating teams.
type TheLeague struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   TheLeagueSpec   `json:"spec"`
	Status TheLeagueStatus `json:"status,omitempty"`
}

// TheLeagueList contains a list of TheLeague.
type TheLeagueList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []TheLeague `json:"items"`
}

type TheLeagueSpec struct {
	// MaxTeams is the maximum number of teams allowed in the league.
	MaxTeams int32 `json:"maxTeams"`
	// Matchups is the number of times any two teams play each other.
	Matchups int32 `json:"matchups"`
	Teams    []Team `json:"teams"`
}

type TheLeagueStatus struct {
	// Live is set once the league is configured and the controller is running.
	Live       bool               `json:"live,omitempty"`
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// Team is a single team of a league.
type Team struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Players     []Player `json:"players"`
}

// Player is one entry of a team's roster.
type Player struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func init() {
	SchemeBuilder.Register(&TheLeague{}, &TheLeagueList{})
}

func (*TheLeague) DescribeSchema() codegen.TypeSchema {
	return codegen.Object("",
		codegen.Object("spec",
			codegen.Integer("maxTeams").Require().
				WithFormat("int32").
				Between(2, 8).
				Describe("MaxTeams specifies the maximum number of teams allowed in the league."),
			codegen.Integer("matchups").Require().
				WithFormat("int32").
				AtLeast(0).
				Describe("Matchups defines the number of times any two teams must play each other."),
			codegen.ArrayOf("teams", codegen.Ref("", TeamRef)).Require().
				Describe("Teams is the list of teams currently registered in the league."),
		).Require().Describe("TheLeagueSpec defines the configuration and participating teams."),
		codegen.Object("status",
			codegen.Boolean("live").
				Describe("Live indicates if the league is configured and the controller is running."),
			meta.Conditions(),
		).Describe("TheLeagueStatus defines the observed state of TheLeague."),
	).Describe("TheLeague is the Schema for the TheLeague API.")
}
