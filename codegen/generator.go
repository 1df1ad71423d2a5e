package codegen

import (
	"context"

	"github.com/grafana/codejen"
)

type JennyList[T any] interface {
	Generate(...T) (codejen.Files, error)
}

// Loader produces the inputs a Generator hands to its jennies.
type Loader[T any] interface {
	Load(ctx context.Context) ([]T, error)
}

// LoaderFunc adapts a function to a Loader.
type LoaderFunc[T any] func(ctx context.Context) ([]T, error)

func (f LoaderFunc[T]) Load(ctx context.Context) ([]T, error) {
	return f(ctx)
}

func NewGenerator[T any](loader Loader[T]) *Generator[T] {
	return &Generator[T]{
		l: loader,
	}
}

type Generator[T any] struct {
	l Loader[T]
}

func (g *Generator[T]) Generate(ctx context.Context, jennies JennyList[T]) (codejen.Files, error) {
	return g.FilteredGenerate(ctx, jennies, func(_ T) bool {
		return true
	})
}

func (g *Generator[T]) FilteredGenerate(ctx context.Context, jennies JennyList[T], filterFunc func(T) bool) (codejen.Files, error) {
	items, err := g.l.Load(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]T, 0)
	for _, item := range items {
		if !filterFunc(item) {
			continue
		}
		filtered = append(filtered, item)
	}
	return jennies.Generate(filtered...)
}
