package codegen

import (
	"context"
	"errors"
	"testing"

	"github.com/grafana/codejen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widgetResource(version string, storage bool, spec ...TypeSchema) ResourceKind {
	return ResourceKind{
		Group:   "example.com",
		Version: version,
		Kind:    "Widget",
		Plural:  "widgets",
		Served:  true,
		Storage: storage,
		Schema: SchemaDescriberFunc(func() TypeSchema {
			return Object("", Object("spec", spec...).Require())
		}),
	}
}

type nameJenny struct{}

func (nameJenny) JennyName() string {
	return "nameJenny"
}

func (j nameJenny) Generate(kind Kind) (*codejen.File, error) {
	return codejen.NewFile(kind.Name()+".txt", []byte(kind.Properties().Group), j), nil
}

func TestKindLoader(t *testing.T) {
	loader := NewKindLoader(DefaultExtractOptions(),
		widgetResource("v1alpha1", false, String("size")),
		widgetResource("v1", true, String("size").Require(), Integer("count")),
	)
	kinds, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, kinds, 1)
	versions := kinds[0].Versions()
	require.Len(t, versions, 2)
	assert.Equal(t, "v1", versions[0].Version)
	assert.Equal(t, []string{"size"}, RequiredFields(versions[0].Schema.Field("spec")))
	assert.Equal(t, "v1alpha1", versions[1].Version)
}

func TestKindLoader_ReportsEveryFailure(t *testing.T) {
	loader := NewKindLoader(DefaultExtractOptions(),
		widgetResource("v1alpha1", false, TypeSchema{Name: "blob", Kind: SchemaKindAny}),
		widgetResource("v1beta1", false, String("ok")),
		widgetResource("v1", true, Enum("color")),
	)
	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "UnsupportedTypeError", ErrorKind(err))
	assert.ErrorContains(t, err, "Widget.example.com/v1alpha1")
	assert.ErrorContains(t, err, "Widget.example.com/v1")
	assert.NotContains(t, err.Error(), "v1beta1")
}

func TestGenerator(t *testing.T) {
	gadget := widgetResource("v1", true)
	gadget.Kind = "Gadget"
	gadget.Plural = "gadgets"
	jennies := codejen.JennyListWithNamer[Kind](func(k Kind) string { return k.Name() })
	jennies.Append(nameJenny{})
	gen := NewGenerator[Kind](NewKindLoader(DefaultExtractOptions(), widgetResource("v1", true), gadget))

	files, err := gen.Generate(context.Background(), jennies)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "Gadget.txt", files[0].RelativePath)
	assert.Equal(t, "Widget.txt", files[1].RelativePath)

	files, err = gen.FilteredGenerate(context.Background(), jennies, func(k Kind) bool { return k.Name() == "Widget" })
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "example.com", string(files[0].Data))
}

func TestGenerator_LoaderError(t *testing.T) {
	boom := errors.New("boom")
	gen := NewGenerator[Kind](LoaderFunc[Kind](func(context.Context) ([]Kind, error) {
		return nil, boom
	}))
	jennies := codejen.JennyListWithNamer[Kind](func(k Kind) string { return k.Name() })
	_, err := gen.Generate(context.Background(), jennies)
	assert.ErrorIs(t, err, boom)
}
