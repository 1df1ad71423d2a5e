package jennies

import (
	"path"
	"sort"

	"github.com/grafana/codejen"
)

const kustomizationFile = "kustomization.yaml"

// KustomizationGenerator renders a kustomization.yaml listing the generated files of one directory,
// so the directory can be applied with kubectl apply -k.
type KustomizationGenerator struct {
	Encoder ManifestOutputEncoder
}

func (*KustomizationGenerator) JennyName() string {
	return "KustomizationGenerator"
}

func (g *KustomizationGenerator) Generate(files codejen.Files) (*codejen.File, error) {
	resources := make([]string, 0, len(files))
	for _, f := range files {
		if path.Base(f.RelativePath) == kustomizationFile {
			continue
		}
		resources = append(resources, f.RelativePath)
	}
	if len(resources) == 0 {
		return nil, nil
	}
	sort.Strings(resources)
	data, err := g.Encoder(map[string]any{
		"apiVersion": "kustomize.config.k8s.io/v1beta1",
		"kind":       "Kustomization",
		"resources":  resources,
	})
	if err != nil {
		return nil, err
	}
	return codejen.NewFile(kustomizationFile, data, g), nil
}
