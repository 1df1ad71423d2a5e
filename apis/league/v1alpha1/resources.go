package v1alpha1

import (
	"github.com/bexxmodd/theleague/apis/meta"
	"github.com/bexxmodd/theleague/codegen"
)

const (
	TeamRef   = "com.bexxmodd.league.v1alpha1.Team"
	PlayerRef = "com.bexxmodd.league.v1alpha1.Player"
)

const (
	teamNamePattern   = `^[a-zA-Z0-9 ]+$`
	playerNamePattern = `^[a-zA-Z]+$`
)

// Definitions returns the definitions the schemas of this package reference.
func Definitions() codegen.Definitions {
	return meta.Definitions().Merge(codegen.Definitions{
		TeamRef: codegen.Object("",
			codegen.String("name").Require().
				Matching(teamNamePattern).
				Describe("Name is the unique identifier for the team."),
			codegen.String("description").
				Describe("Description provides an optional short description for the team."),
			codegen.String("location").
				Describe("Location is an optional field for the team's location or home field."),
			codegen.ArrayOf("players", codegen.Ref("", PlayerRef)).Require().
				Describe("Players is the roster of players on this team."),
		).Describe("Team represents an individual team participating in the league."),
		PlayerRef: codegen.Object("",
			codegen.String("firstName").Require().
				Matching(playerNamePattern).
				Describe("FirstName is the first name of a player."),
			codegen.String("lastName").Require().
				Matching(playerNamePattern).
				Describe("LastName is the last name of a player."),
		).Describe("Player represents an individual player on a team's roster."),
	})
}

// Resources returns the custom resources of this version, in registration order.
func Resources() []codegen.ResourceKind {
	defs := Definitions()
	return []codegen.ResourceKind{{
		Group:      Group,
		Version:    Version,
		Kind:       "TheLeague",
		Scope:      codegen.ScopeNamespaced,
		Plural:     "theleagues",
		Categories: []string{"league"},
		Served:     true,
		Storage:    true,
		Schema:     &TheLeague{},
		PrinterColumns: []codegen.PrinterColumn{
			{Name: "Max Teams", Type: "integer", JSONPath: ".spec.maxTeams"},
			{Name: "Live", Type: "boolean", JSONPath: ".status.live"},
		},
		Definitions: defs,
	}, {
		Group:      Group,
		Version:    Version,
		Kind:       "Standing",
		Scope:      codegen.ScopeNamespaced,
		Plural:     "standings",
		Categories: []string{"league"},
		Served:     true,
		Storage:    true,
		Schema:     &Standing{},
		PrinterColumns: []codegen.PrinterColumn{
			{Name: "League", Type: "string", JSONPath: ".spec.leagueName"},
			{Name: "Team", Type: "string", JSONPath: ".spec.teamName"},
			{Name: "Points", Type: "integer", JSONPath: ".status.points"},
		},
		Definitions: defs,
	}, {
		Group:      GameGroup,
		Version:    Version,
		Kind:       "GameResult",
		Scope:      codegen.ScopeNamespaced,
		Plural:     "gameresults",
		Categories: []string{"league"},
		Served:     true,
		Storage:    true,
		Schema:     &GameResult{},
		PrinterColumns: []codegen.PrinterColumn{
			{Name: "League", Type: "string", JSONPath: ".spec.leagueName"},
			{Name: "Round", Type: "integer", JSONPath: ".spec.roundNumber"},
			{Name: "Outcome", Type: "string", JSONPath: ".spec.result.outcome"},
		},
		Definitions: defs,
	}}
}
