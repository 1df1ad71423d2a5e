package v1alpha1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

func TestTheLeague_DeepCopy(t *testing.T) {
	in := &TheLeague{
		ObjectMeta: metav1.ObjectMeta{Name: "premier", Labels: map[string]string{"tier": "1"}},
		Spec: TheLeagueSpec{
			MaxTeams: 4,
			Teams: []Team{{
				Name:        "Rovers",
				Description: ptr.To("founded 1901"),
				Players:     []Player{{FirstName: "Ada", LastName: "Byron"}},
			}},
		},
		Status: TheLeagueStatus{Conditions: []metav1.Condition{{Type: "Ready", Status: metav1.ConditionTrue}}},
	}

	out := in.DeepCopyObject().(*TheLeague)
	assert.Equal(t, in, out)

	out.Labels["tier"] = "2"
	*out.Spec.Teams[0].Description = "renamed"
	out.Spec.Teams[0].Players[0].FirstName = "Grace"
	out.Status.Conditions[0].Status = metav1.ConditionFalse

	assert.Equal(t, "1", in.Labels["tier"])
	assert.Equal(t, "founded 1901", *in.Spec.Teams[0].Description)
	assert.Equal(t, "Ada", in.Spec.Teams[0].Players[0].FirstName)
	assert.Equal(t, metav1.ConditionTrue, in.Status.Conditions[0].Status)
}

func TestGameResult_DeepCopy(t *testing.T) {
	in := &GameResult{
		ObjectMeta: metav1.ObjectMeta{Name: "round-1"},
		Spec: GameResultSpec{
			LeagueName: "premier",
			Teams:      [2]Team{{Name: "Rovers", Location: ptr.To("north")}, {Name: "United"}},
			Result:     GameOutcome{Outcome: OutcomeWinnerTeam0, ScoreT0: ptr.To[int32](2), ScoreT1: ptr.To[int32](1)},
		},
	}

	out := in.DeepCopy()
	assert.Equal(t, in, out)

	*out.Spec.Result.ScoreT0 = 5
	*out.Spec.Teams[0].Location = "south"
	assert.Equal(t, int32(2), *in.Spec.Result.ScoreT0)
	assert.Equal(t, "north", *in.Spec.Teams[0].Location)

	var nilResult *GameResult
	assert.Nil(t, nilResult.DeepCopy())
}
