package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/bexxmodd/theleague/apis/meta"
	"github.com/bexxmodd/theleague/codegen"
)

// StandingResolution is the tie-breaking method of a standing.
type StandingResolution string

const (
	ResolutionHead2Head      = StandingResolution("Head2Head")
	ResolutionGoalDifference = StandingResolution("GoalDifference")
)

// Standing tracks the calculated performance of a single team.
type Standing struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   StandingSpec   `json:"spec"`
	Status StandingStatus `json:"status,omitempty"`
}

// StandingList contains a list of Standing.
type StandingList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Standing `json:"items"`
}

type StandingSpec struct {
	LeagueName string             `json:"leagueName"`
	TeamName   string             `json:"teamName"`
	Resolution StandingResolution `json:"resolution"`
}

// StandingStatus is managed by the controller.
type StandingStatus struct {
	Points     int32              `json:"points"`
	Wins       int32              `json:"wins"`
	Losses     int32              `json:"losses"`
	Draws      int32              `json:"draws"`
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

func init() {
	SchemeBuilder.Register(&Standing{}, &StandingList{})
}

func (*Standing) DescribeSchema() codegen.TypeSchema {
	counter := func(name, description string) codegen.TypeSchema {
		return codegen.Integer(name).Require().WithFormat("int32").AtLeast(0).Describe(description)
	}
	return codegen.Object("",
		codegen.Object("spec",
			codegen.String("leagueName").Require().
				Describe("LeagueName references the parent TheLeague resource this standing belongs to."),
			codegen.String("teamName").Require().
				Describe("TeamName is the name of the team this standing corresponds to."),
			codegen.Enum("resolution", string(ResolutionHead2Head), string(ResolutionGoalDifference)).Require().
				Describe("Resolution defines the tie-breaking method used for calculating the standing."),
		).Require().Describe("StandingSpec identifies the team and league of a standing."),
		codegen.Object("status",
			counter("points", "Points is the total accumulated points for the team."),
			counter("wins", "Wins is the total number of wins."),
			counter("losses", "Losses is the total number of losses."),
			counter("draws", "Draws is the total number of draws."),
			meta.Conditions(),
		).Describe("StandingStatus defines the observed and computed state of the Standing."),
	).Describe("Standing is the Schema for the Standing API.")
}
