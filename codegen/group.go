package codegen

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Extracted is a ResourceKind together with its realized version.
type Extracted struct {
	Resource ResourceKind
	Version  KindVersion
}

// GroupKinds joins extracted resource versions into one Kind per group and kind.
// Kinds are returned sorted by group and kind, and the versions of each kind are sorted by priority.
// Every kind whose versions disagree on scope or names, or that declares a version twice,
// contributes a VersionConflictError; all of them are returned together.
func GroupKinds(extracted []Extracted) ([]Kind, error) {
	byGroupKind := make(map[string]*AnyKind)
	keys := make([]string, 0)
	var errs error
	for _, e := range extracted {
		props := propertiesOf(e.Resource)
		key := props.Group + "/" + props.Kind
		kind, ok := byGroupKind[key]
		if !ok {
			kind = &AnyKind{Props: props}
			byGroupKind[key] = kind
			keys = append(keys, key)
		} else if err := checkAgreement(kind, props, e.Version.Version); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if kind.Version(e.Version.Version) != nil {
			errs = multierror.Append(errs, &VersionConflictError{
				Resource: kind.String(),
				Versions: []string{e.Version.Version},
				Reason:   "version declared more than once",
			})
			continue
		}
		kind.AllVersions = append(kind.AllVersions, e.Version)
	}
	if errs != nil {
		return nil, errs
	}

	sort.Strings(keys)
	kinds := make([]Kind, 0, len(keys))
	for _, key := range keys {
		kind := byGroupKind[key]
		SortVersions(kind.AllVersions)
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func propertiesOf(rk ResourceKind) KindProperties {
	props := KindProperties{
		Kind:       rk.Kind,
		Group:      rk.Group,
		Plural:     rk.Plural,
		Singular:   rk.SingularName(),
		ShortNames: rk.ShortNames,
		Categories: rk.Categories,
		Scope:      rk.Scope,
	}
	if props.Plural == "" {
		props.Plural = strings.ToLower(rk.Kind) + "s"
	}
	if props.Scope == "" {
		props.Scope = ScopeNamespaced
	}
	return props
}

func checkAgreement(kind *AnyKind, props KindProperties, version string) error {
	existing := kind.Props
	var reasons []string
	if existing.Scope != props.Scope {
		reasons = append(reasons, fmt.Sprintf("scope %s != %s", existing.Scope, props.Scope))
	}
	if existing.Plural != props.Plural {
		reasons = append(reasons, fmt.Sprintf("plural %s != %s", existing.Plural, props.Plural))
	}
	if existing.Singular != props.Singular {
		reasons = append(reasons, fmt.Sprintf("singular %s != %s", existing.Singular, props.Singular))
	}
	if !slices.Equal(existing.ShortNames, props.ShortNames) {
		reasons = append(reasons, "short names differ")
	}
	if !slices.Equal(existing.Categories, props.Categories) {
		reasons = append(reasons, "categories differ")
	}
	if len(reasons) == 0 {
		return nil
	}
	versions := make([]string, 0, len(kind.AllVersions)+1)
	for _, v := range kind.AllVersions {
		versions = append(versions, v.Version)
	}
	return &VersionConflictError{
		Resource: kind.String(),
		Versions: append(versions, version),
		Reason:   strings.Join(reasons, "; "),
	}
}
