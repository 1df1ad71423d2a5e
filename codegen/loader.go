package codegen

import (
	"context"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/bexxmodd/theleague/logging"
)

var tracer = otel.Tracer("github.com/bexxmodd/theleague/codegen")

// KindLoader extracts the schemas of a fixed set of resource kinds and groups them into Kinds.
type KindLoader struct {
	Resources []ResourceKind
	Options   ExtractOptions
}

// NewKindLoader returns a KindLoader for the resources.
func NewKindLoader(opts ExtractOptions, resources ...ResourceKind) *KindLoader {
	return &KindLoader{
		Resources: resources,
		Options:   opts,
	}
}

// Load extracts every resource concurrently and waits for all of them before grouping.
// Extraction failures of all resources are returned together, in registration order.
func (k *KindLoader) Load(ctx context.Context) ([]Kind, error) {
	ctx, span := tracer.Start(ctx, "codegen.ExtractSchemas")
	defer span.End()
	span.SetAttributes(attribute.Int("resources", len(k.Resources)))

	extracted := make([]Extracted, len(k.Resources))
	errs := make([]error, len(k.Resources))
	eg := errgroup.Group{}
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, rk := range k.Resources {
		eg.Go(func() error {
			kv, err := ExtractKind(rk, k.Options)
			if err != nil {
				errs[i] = err
				return nil
			}
			logging.FromContext(ctx).DebugContext(ctx, "extracted schema", "resource", rk.String(), "fields", kv.Schema.FieldCount())
			extracted[i] = Extracted{Resource: rk, Version: kv}
			return nil
		})
	}
	_ = eg.Wait()

	var merr error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if merr != nil {
		span.RecordError(merr)
		return nil, merr
	}
	return GroupKinds(extracted)
}
