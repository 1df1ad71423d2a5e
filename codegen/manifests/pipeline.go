// Package manifests runs the generator pipelines.
//
// The CRD path extracts every compiled-in schema, groups the versions of each kind and renders one
// CustomResourceDefinition per kind. The RBAC path resolves the controller's declared access against
// the known API kinds, synthesizes least-privilege rules and renders the RBAC objects. The paths share
// nothing but the extracted kinds, and GenerateAll runs them concurrently.
package manifests

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/grafana/codejen"
	"github.com/hashicorp/go-multierror"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bexxmodd/theleague/codegen"
	"github.com/bexxmodd/theleague/codegen/access"
	"github.com/bexxmodd/theleague/codegen/config"
	"github.com/bexxmodd/theleague/codegen/jennies"
	"github.com/bexxmodd/theleague/codegen/output"
	"github.com/bexxmodd/theleague/codegen/rbac"
	"github.com/bexxmodd/theleague/logging"
)

var tracer = otel.Tracer("github.com/bexxmodd/theleague/codegen/manifests")

// Pipeline generates the manifests of a set of custom resources and the controller that uses them.
type Pipeline struct {
	Config    config.Config
	Resources []codegen.ResourceKind
	// Manager is the access declared by the controller's reconcilers.
	Manager *access.Declarations
	// LeaderElection is the access needed for leader election. It is ignored when leader election is disabled.
	LeaderElection *access.Declarations

	kindsOnce sync.Once
	kinds     []codegen.Kind
	kindsErr  error
}

// New returns a Pipeline.
func New(cfg config.Config, resources []codegen.ResourceKind, manager, leaderElection *access.Declarations) *Pipeline {
	return &Pipeline{
		Config:         cfg,
		Resources:      resources,
		Manager:        manager,
		LeaderElection: leaderElection,
	}
}

// Kinds extracts and groups the resources. Extraction runs once per Pipeline and the result is
// shared by both paths.
func (p *Pipeline) Kinds(ctx context.Context) ([]codegen.Kind, error) {
	p.kindsOnce.Do(func() {
		opts := codegen.ExtractOptions{
			MaxRecursion: p.Config.MaxRecursion,
			MaxDepth:     p.Config.MaxDepth,
		}
		p.kinds, p.kindsErr = codegen.NewKindLoader(opts, p.Resources...).Load(ctx)
	})
	return p.kinds, p.kindsErr
}

func (p *Pipeline) limits() jennies.Limits {
	return jennies.Limits{
		MaxDepth:  p.Config.SchemaDepth,
		MaxFields: p.Config.MaxFields,
		MaxBytes:  p.Config.MaxBytes,
	}
}

// CRDFiles renders the CRD manifests, plus a kustomization when enabled.
func (p *Pipeline) CRDFiles(ctx context.Context) (codejen.Files, error) {
	ctx, span := tracer.Start(ctx, "manifests.CRDFiles")
	defer span.End()

	gen := codegen.NewGenerator[codegen.Kind](codegen.LoaderFunc[codegen.Kind](p.Kinds))
	files, err := gen.Generate(ctx, CRDGenerator(output.EncodeYAML, "yaml", p.Config.CRDPrefix, p.limits()))
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("files", len(files)))
	logging.FromContext(ctx).DebugContext(ctx, "rendered CRD manifests", "count", len(files))
	return p.withKustomization(files)
}

// RBACFiles renders the RBAC manifests, plus a kustomization when enabled.
func (p *Pipeline) RBACFiles(ctx context.Context) (codejen.Files, error) {
	ctx, span := tracer.Start(ctx, "manifests.RBACFiles")
	defer span.End()

	registry := access.NewBuiltinRegistry()
	for _, rk := range p.Resources {
		registry.AddResource(rk)
	}

	manager, err := synthesize(ctx, "manager", p.Manager, registry)
	if err != nil {
		return nil, fail(span, err)
	}
	in := &jennies.RBACInput{
		Options: jennies.RBACOptions{
			AppName:                p.Config.AppName,
			ServiceAccountName:     p.Config.ServiceAccount,
			ManagerRoleName:        ManagerRoleName,
			LeaderElectionRoleName: LeaderElectionRoleName,
			Namespace:              p.Config.Namespace,
			WatchNamespace:         p.Config.WatchNamespace,
		},
		Manager: manager,
	}
	if p.Config.LeaderElection && p.LeaderElection != nil {
		in.LeaderElection, err = synthesize(ctx, "leader election", p.LeaderElection, registry)
		if err != nil {
			return nil, fail(span, err)
		}
	}
	if p.Config.UserRoles {
		in.Kinds, err = p.Kinds(ctx)
		if err != nil {
			return nil, fail(span, err)
		}
	}

	files, err := RBACGenerator(output.EncodeYAML).Generate(in)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("files", len(files)))
	logging.FromContext(ctx).DebugContext(ctx, "rendered RBAC manifests", "count", len(files))
	return p.withKustomization(files)
}

func synthesize(ctx context.Context, name string, decls *access.Declarations, registry *access.Registry) (*rbac.RuleSet, error) {
	if decls == nil {
		decls = access.NewDeclarations()
	}
	set, err := access.Collect(decls, registry)
	if err != nil {
		return nil, err
	}
	rules, err := rbac.Synthesize(set)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).DebugContext(ctx, "synthesized rules", "role", name, "tuples", set.Len(), "rules", len(rules.Rules))
	return rules, nil
}

func (p *Pipeline) withKustomization(files codejen.Files) (codejen.Files, error) {
	if !p.Config.Kustomize {
		return files, nil
	}
	k := &jennies.KustomizationGenerator{Encoder: output.EncodeYAML}
	f, err := k.Generate(files)
	if err != nil || f == nil {
		return files, err
	}
	return append(files, *f), nil
}

// GenerateCRDs renders the CRD manifests and writes them to the CRD directory.
func (p *Pipeline) GenerateCRDs(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "manifests.GenerateCRDs")
	defer span.End()

	files, err := p.CRDFiles(ctx)
	if err != nil {
		return fail(span, err)
	}
	warnRemovedVersions(ctx, p.Config.CRDDir, files)
	return fail(span, output.NewWriter(p.Config.CRDDir).Write(ctx, files))
}

// GenerateRBAC renders the RBAC manifests and writes them to the RBAC directory.
func (p *Pipeline) GenerateRBAC(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "manifests.GenerateRBAC")
	defer span.End()

	files, err := p.RBACFiles(ctx)
	if err != nil {
		return fail(span, err)
	}
	return fail(span, output.NewWriter(p.Config.RBACDir).Write(ctx, files))
}

// GenerateAll creates both output directories and then runs the CRD and RBAC paths concurrently.
// A failure of one path does not stop the other. When both fail because extraction failed,
// the extraction error is returned once.
func (p *Pipeline) GenerateAll(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "manifests.GenerateAll")
	defer span.End()

	var errs error
	for _, dir := range []string{p.Config.CRDDir, p.Config.RBACDir} {
		if err := output.NewWriter(dir).Prepare(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if errs != nil {
		return fail(span, errs)
	}

	var (
		wg      sync.WaitGroup
		crdErr  error
		rbacErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		crdErr = p.GenerateCRDs(ctx)
	}()
	go func() {
		defer wg.Done()
		rbacErr = p.GenerateRBAC(ctx)
	}()
	wg.Wait()

	if crdErr != nil {
		errs = multierror.Append(errs, fmt.Errorf("crds: %w", crdErr))
	}
	if rbacErr != nil && (p.kindsErr == nil || !errors.Is(rbacErr, p.kindsErr)) {
		errs = multierror.Append(errs, fmt.Errorf("rbac: %w", rbacErr))
	}
	return fail(span, errs)
}

// warnRemovedVersions compares each CRD with the copy a previous run left in dir and warns about
// versions that were served before and are gone now.
func warnRemovedVersions(ctx context.Context, dir string, files codejen.Files) {
	log := logging.FromContext(ctx)
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f.RelativePath))
		previous, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		removed, err := jennies.RemovedServedVersions(previous, f.Data)
		if err != nil {
			log.DebugContext(ctx, "skipping compatibility check", "path", path, "error", err)
			continue
		}
		if len(removed) > 0 {
			log.WarnContext(ctx, "served versions removed from CRD; deprecate them before removal", "path", path, "versions", removed)
		}
	}
}

func fail(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, codegen.ErrorKind(err))
	}
	return err
}
