package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

func (in *Player) DeepCopyInto(out *Player) {
	*out = *in
}

func (in *Team) DeepCopyInto(out *Team) {
	*out = *in
	if in.Description != nil {
		out.Description = new(string)
		*out.Description = *in.Description
	}
	if in.Location != nil {
		out.Location = new(string)
		*out.Location = *in.Location
	}
	if in.Players != nil {
		out.Players = make([]Player, len(in.Players))
		copy(out.Players, in.Players)
	}
}

func (in *Team) DeepCopy() *Team {
	if in == nil {
		return nil
	}
	out := new(Team)
	in.DeepCopyInto(out)
	return out
}

func copyConditions(in []metav1.Condition) []metav1.Condition {
	if in == nil {
		return nil
	}
	out := make([]metav1.Condition, len(in))
	for i := range in {
		in[i].DeepCopyInto(&out[i])
	}
	return out
}

func copyTeams(in []Team) []Team {
	if in == nil {
		return nil
	}
	out := make([]Team, len(in))
	for i := range in {
		in[i].DeepCopyInto(&out[i])
	}
	return out
}

func copyInt32(in *int32) *int32 {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}

func (in *TheLeagueSpec) DeepCopyInto(out *TheLeagueSpec) {
	*out = *in
	out.Teams = copyTeams(in.Teams)
}

func (in *TheLeagueStatus) DeepCopyInto(out *TheLeagueStatus) {
	*out = *in
	out.Conditions = copyConditions(in.Conditions)
}

func (in *TheLeague) DeepCopyInto(out *TheLeague) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *TheLeague) DeepCopy() *TheLeague {
	if in == nil {
		return nil
	}
	out := new(TheLeague)
	in.DeepCopyInto(out)
	return out
}

func (in *TheLeague) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *TheLeagueList) DeepCopyInto(out *TheLeagueList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]TheLeague, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *TheLeagueList) DeepCopy() *TheLeagueList {
	if in == nil {
		return nil
	}
	out := new(TheLeagueList)
	in.DeepCopyInto(out)
	return out
}

func (in *TheLeagueList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *StandingStatus) DeepCopyInto(out *StandingStatus) {
	*out = *in
	out.Conditions = copyConditions(in.Conditions)
}

func (in *Standing) DeepCopyInto(out *Standing) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec = in.Spec
	in.Status.DeepCopyInto(&out.Status)
}

func (in *Standing) DeepCopy() *Standing {
	if in == nil {
		return nil
	}
	out := new(Standing)
	in.DeepCopyInto(out)
	return out
}

func (in *Standing) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *StandingList) DeepCopyInto(out *StandingList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]Standing, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *StandingList) DeepCopy() *StandingList {
	if in == nil {
		return nil
	}
	out := new(StandingList)
	in.DeepCopyInto(out)
	return out
}

func (in *StandingList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *GameOutcome) DeepCopyInto(out *GameOutcome) {
	*out = *in
	out.ScoreT0 = copyInt32(in.ScoreT0)
	out.ScoreT1 = copyInt32(in.ScoreT1)
	out.Score = copyInt32(in.Score)
}

func (in *GameResultSpec) DeepCopyInto(out *GameResultSpec) {
	*out = *in
	for i := range in.Teams {
		in.Teams[i].DeepCopyInto(&out.Teams[i])
	}
	in.Date.DeepCopyInto(&out.Date)
	in.Result.DeepCopyInto(&out.Result)
}

func (in *GameResult) DeepCopyInto(out *GameResult) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
}

func (in *GameResult) DeepCopy() *GameResult {
	if in == nil {
		return nil
	}
	out := new(GameResult)
	in.DeepCopyInto(out)
	return out
}

func (in *GameResult) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *GameResultList) DeepCopyInto(out *GameResultList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]GameResult, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *GameResultList) DeepCopy() *GameResultList {
	if in == nil {
		return nil
	}
	out := new(GameResultList)
	in.DeepCopyInto(out)
	return out
}

func (in *GameResultList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
