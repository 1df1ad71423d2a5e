package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/bexxmodd/theleague/codegen"
)

// Outcome selects the variant of a GameOutcome.
type Outcome string

const (
	OutcomeWinnerTeam0 = Outcome("WinnerTeam0")
	OutcomeWinnerTeam1 = Outcome("WinnerTeam1")
	OutcomeDraw        = Outcome("Draw")
)

// GameResult records the outcome of a single match.
type GameResult struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec GameResultSpec `json:"spec"`
}

// GameResultList contains a list of GameResult.
type GameResultList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []GameResult `json:"items"`
}

type GameResultSpec struct {
	LeagueName  string      `json:"leagueName"`
	RoundNumber int32       `json:"roundNumber"`
	Teams       [2]Team     `json:"teams"`
	Date        metav1.Time `json:"date"`
	Result      GameOutcome `json:"result"`
}

// GameOutcome is the result of a game. Winners get 3 points, losers 0 and a draw 1 point each.
// ScoreT0 and ScoreT1 are set for WinnerTeam0 and WinnerTeam1, Score for Draw.
type GameOutcome struct {
	Outcome Outcome `json:"outcome"`
	ScoreT0 *int32  `json:"scoreT0,omitempty"`
	ScoreT1 *int32  `json:"scoreT1,omitempty"`
	Score   *int32  `json:"score,omitempty"`
}

func init() {
	GameSchemeBuilder.Register(&GameResult{}, &GameResultList{})
}

func (*GameResult) DescribeSchema() codegen.TypeSchema {
	score := func(name, description string) codegen.TypeSchema {
		return codegen.Integer(name).Require().WithFormat("int32").AtLeast(0).Describe(description)
	}
	return codegen.Object("",
		codegen.Object("spec",
			codegen.String("leagueName").Require().
				Describe("LeagueName references the parent TheLeague resource this game belongs to."),
			codegen.Integer("roundNumber").Require().
				WithFormat("int32").
				AtLeast(0).
				Describe("RoundNumber indicates which round of the league schedule this game belongs to."),
			codegen.ArrayOf("teams", codegen.Ref("", TeamRef)).Require().
				ItemCount(2, 2).
				Describe("Teams contains the two teams that played the game."),
			codegen.String("date").Require().
				WithFormat("date-time").
				Describe("Date is the time the game was played."),
			codegen.Union("result", "outcome",
				codegen.Object(string(OutcomeWinnerTeam0),
					score("scoreT0", "Score of the first team."),
					score("scoreT1", "Score of the second team."),
				),
				codegen.Object(string(OutcomeWinnerTeam1),
					score("scoreT0", "Score of the first team."),
					score("scoreT1", "Score of the second team."),
				),
				codegen.Object(string(OutcomeDraw),
					score("score", "Score of both teams."),
				),
			).Require().Describe("Result specifies the outcome and scores of the game."),
		).Require().Describe("GameResultSpec describes a single match."),
	).Describe("GameResult is the Schema for the GameResult API.")
}
