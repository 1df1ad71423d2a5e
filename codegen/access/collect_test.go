package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bexxmodd/theleague/codegen"
)

func widgetRegistry() *Registry {
	r := NewBuiltinRegistry()
	r.AddResource(codegen.ResourceKind{Group: "league.io", Version: "v1beta1", Kind: "Widget", Plural: "widgets"})
	return r
}

func TestCollect(t *testing.T) {
	decls := NewDeclarations()
	decls.Client("controller/widget", "league.io", "Widget").Can(ReadVerbs...).Subresource("status", VerbUpdate, VerbPatch)
	decls.Client("controller/widget-watch", "league.io", "Widget").Can(VerbWatch, VerbGet)
	decls.Client("controller/events", "", "Event").Can(VerbCreate, VerbPatch)
	decls.Client("controller/config", "", "ConfigMap").Can(VerbGet).Named("league-config")

	set, err := Collect(decls, widgetRegistry())
	require.NoError(t, err)

	want := []Tuple{
		{Group: "", Resource: "configmaps", Verb: VerbGet, Name: "league-config", Scope: codegen.ScopeNamespaced},
		{Group: "", Resource: "events", Verb: VerbCreate, Scope: codegen.ScopeNamespaced},
		{Group: "", Resource: "events", Verb: VerbPatch, Scope: codegen.ScopeNamespaced},
		{Group: "league.io", Resource: "widgets", Verb: VerbGet, Scope: codegen.ScopeNamespaced},
		{Group: "league.io", Resource: "widgets", Verb: VerbList, Scope: codegen.ScopeNamespaced},
		{Group: "league.io", Resource: "widgets", Verb: VerbWatch, Scope: codegen.ScopeNamespaced},
		{Group: "league.io", Resource: "widgets/status", Verb: VerbUpdate, Scope: codegen.ScopeNamespaced},
		{Group: "league.io", Resource: "widgets/status", Verb: VerbPatch, Scope: codegen.ScopeNamespaced},
	}
	assert.Equal(t, want, set.List())
	assert.Equal(t, []string{"controller/widget", "controller/widget-watch"}, set.Sources(want[3]))
}

func TestCollect_Errors(t *testing.T) {
	tests := []struct {
		name     string
		declare  func(d *Declarations)
		wantKind string
	}{{
		name: "unknown verb",
		declare: func(d *Declarations) {
			d.Client("controller/widget", "league.io", "Widget").Can(VerbGet, Verb("escalate"))
		},
		wantKind: "InvalidVerbError",
	}, {
		name: "unknown subresource verb",
		declare: func(d *Declarations) {
			d.Client("controller/widget", "league.io", "Widget").Subresource("status", Verb("GET"))
		},
		wantKind: "InvalidVerbError",
	}, {
		name: "missing kind",
		declare: func(d *Declarations) {
			d.Client("controller/gadget", "league.io", "Gadget").Can(VerbGet)
		},
		wantKind: "MissingDeclarationError",
	}, {
		name: "kind in wrong group",
		declare: func(d *Declarations) {
			d.Client("controller/events", "league.io", "Event").Can(VerbCreate)
		},
		wantKind: "MissingDeclarationError",
	}, {
		name: "pinned scope contradicts registry",
		declare: func(d *Declarations) {
			d.Client("controller/widget", "league.io", "Widget").Can(VerbGet).Scope(codegen.ScopeCluster)
		},
		wantKind: "ConflictingScopeError",
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			decls := NewDeclarations()
			test.declare(decls)
			set, err := Collect(decls, widgetRegistry())
			require.Error(t, err)
			assert.Nil(t, set)
			assert.Equal(t, test.wantKind, codegen.ErrorKind(err))
		})
	}
}

func TestCollect_ReportsEverySource(t *testing.T) {
	decls := NewDeclarations()
	decls.Client("controller/a", "league.io", "Gadget").Can(VerbGet)
	decls.Client("controller/b", "league.io", "Sprocket").Can(VerbGet)

	_, err := Collect(decls, widgetRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "controller/a")
	assert.Contains(t, err.Error(), "controller/b")

	var missing *codegen.MissingDeclarationError
	require.True(t, errors.As(err, &missing))
}

func TestCompareVerbs(t *testing.T) {
	assert.Negative(t, CompareVerbs(VerbGet, VerbList))
	assert.Positive(t, CompareVerbs(VerbDeleteCollection, VerbDelete))
	assert.Negative(t, CompareVerbs(VerbDeleteCollection, Verb("approve")))
	assert.Negative(t, CompareVerbs(Verb("approve"), Verb("bind")))
	assert.Zero(t, CompareVerbs(VerbPatch, VerbPatch))
	assert.True(t, VerbWatch.Valid())
	assert.False(t, Verb("escalate").Valid())
}
