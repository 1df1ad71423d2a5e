package v1alpha1

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/utils/ptr"

	"github.com/bexxmodd/theleague/codegen"
	"github.com/bexxmodd/theleague/codegen/jennies"
)

func TestResources_Extract(t *testing.T) {
	for _, rk := range Resources() {
		t.Run(rk.Kind, func(t *testing.T) {
			kv, err := codegen.ExtractKind(rk, codegen.DefaultExtractOptions())
			require.NoError(t, err)
			spec := kv.Schema.Field("spec")
			require.NotNil(t, spec)
			assert.True(t, spec.Required)
		})
	}
}

func TestTheLeagueSchema(t *testing.T) {
	rk := Resources()[0]
	kv, err := codegen.ExtractKind(rk, codegen.DefaultExtractOptions())
	require.NoError(t, err)

	spec := kv.Schema.Field("spec")
	assert.Equal(t, []string{"maxTeams", "matchups", "teams"}, codegen.RequiredFields(spec))
	maxTeams := spec.Field("maxTeams")
	assert.Equal(t, ptr.To(2.0), maxTeams.Constraints.Minimum)
	assert.Equal(t, ptr.To(8.0), maxTeams.Constraints.Maximum)

	team := spec.Field("teams").Items
	require.NotNil(t, team)
	assert.Equal(t, codegen.SchemaKindObject, team.Kind)
	assert.Equal(t, []string{"name", "players"}, codegen.RequiredFields(team))
	assert.Equal(t, teamNamePattern, team.Field("name").Constraints.Pattern)
	player := team.Field("players").Items
	assert.Equal(t, []string{"firstName", "lastName"}, codegen.RequiredFields(player))

	conditions := kv.Schema.Field("status").Field("conditions")
	require.NotNil(t, conditions)
	condition := conditions.Items
	assert.Equal(t, []string{"type", "status", "lastTransitionTime", "reason", "message"}, codegen.RequiredFields(condition))
}

// The JSON encoding of the Go types uses the camelCase field names and the flat
// outcome-discriminated result the CRD declares.
func TestGameResult_EncodingMatchesSchema(t *testing.T) {
	kv, err := codegen.ExtractKind(Resources()[2], codegen.DefaultExtractOptions())
	require.NoError(t, err)
	spec := kv.Schema.Field("spec")

	raw, err := json.Marshal(GameResultSpec{
		LeagueName:  "premier",
		RoundNumber: 1,
		Teams:       [2]Team{{Name: "Rovers"}, {Name: "United"}},
		Date:        metav1.NewTime(time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)),
		Result:      GameOutcome{Outcome: OutcomeDraw, Score: ptr.To[int32](1)},
	})
	require.NoError(t, err)
	encoded := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &encoded))

	for key := range encoded {
		assert.NotNil(t, spec.Field(key), "spec.%s is not in the schema", key)
	}
	for _, name := range codegen.RequiredFields(spec) {
		assert.Contains(t, encoded, name)
	}
	assert.NotContains(t, encoded, "league_name")
	assert.Equal(t, map[string]any{"outcome": "Draw", "score": float64(1)}, encoded["result"])
}

func TestGameResultSchema(t *testing.T) {
	rk := Resources()[2]
	kv, err := codegen.ExtractKind(rk, codegen.DefaultExtractOptions())
	require.NoError(t, err)
	assert.Nil(t, kv.Schema.Field("status"))

	result := kv.Schema.Field("spec").Field("result")
	require.NotNil(t, result)
	assert.Equal(t, codegen.SchemaKindObject, result.Kind)
	assert.Equal(t, []string{"outcome"}, codegen.RequiredFields(result))
	assert.Equal(t, []string{"WinnerTeam0", "WinnerTeam1", "Draw"}, result.Field("outcome").Constraints.Enum)
	for _, name := range []string{"scoreT0", "scoreT1", "score"} {
		assert.NotNil(t, result.Field(name), name)
	}

	teams := kv.Schema.Field("spec").Field("teams")
	assert.Equal(t, ptr.To(int64(2)), teams.Constraints.MinItems)
	assert.Equal(t, ptr.To(int64(2)), teams.Constraints.MaxItems)
}

func TestResources_BuildCRDs(t *testing.T) {
	kinds, err := codegen.NewKindLoader(codegen.DefaultExtractOptions(), Resources()...).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, kinds, 3)

	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		crd, err := jennies.BuildCRD(kind, jennies.DefaultLimits())
		require.NoError(t, err)
		names = append(names, crd.Name)
		require.Len(t, crd.Spec.Versions, 1)
		assert.True(t, crd.Spec.Versions[0].Storage)
	}
	assert.Equal(t, []string{"standings.bexxmodd.com", "theleagues.bexxmodd.com", "gameresults.league.bexxmodd.com"}, names)
}

func TestAddToScheme(t *testing.T) {
	s := runtime.NewScheme()
	require.NoError(t, AddToScheme(s))
	for _, gvk := range []schema.GroupVersionKind{
		GroupVersion.WithKind("TheLeague"),
		GroupVersion.WithKind("StandingList"),
		GameGroupVersion.WithKind("GameResult"),
	} {
		assert.True(t, s.Recognizes(gvk), gvk.String())
	}
	assert.False(t, s.Recognizes(GroupVersion.WithKind("GameResult")))
}
