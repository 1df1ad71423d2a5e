package rbac

import (
	"slices"
	"sort"
	"strings"

	rbacv1 "k8s.io/api/rbac/v1"

	"github.com/bexxmodd/theleague/codegen"
	"github.com/bexxmodd/theleague/codegen/access"
)

// Rule is a synthesized policy rule. A rule covers exactly one API group and one scope.
type Rule struct {
	Scope         codegen.Scope
	APIGroup      string
	Resources     []string
	Verbs         []access.Verb
	ResourceNames []string
}

// PolicyRule converts the rule into its rbac/v1 form.
func (r Rule) PolicyRule() rbacv1.PolicyRule {
	verbs := make([]string, len(r.Verbs))
	for i, v := range r.Verbs {
		verbs[i] = string(v)
	}
	pr := rbacv1.PolicyRule{
		APIGroups: []string{r.APIGroup},
		Resources: append([]string(nil), r.Resources...),
		Verbs:     verbs,
	}
	if len(r.ResourceNames) > 0 {
		pr.ResourceNames = append([]string(nil), r.ResourceNames...)
	}
	return pr
}

// RuleSet is the ordered result of Synthesize.
type RuleSet struct {
	Rules []Rule
}

// Scoped returns the rules of one scope, in order.
func (s *RuleSet) Scoped(scope codegen.Scope) []Rule {
	rules := make([]Rule, 0)
	for _, r := range s.Rules {
		if r.Scope == scope {
			rules = append(rules, r)
		}
	}
	return rules
}

// PolicyRules converts rules into their rbac/v1 form.
func PolicyRules(rules []Rule) []rbacv1.PolicyRule {
	prs := make([]rbacv1.PolicyRule, len(rules))
	for i, r := range rules {
		prs[i] = r.PolicyRule()
	}
	return prs
}

// Covers reports whether some rule grants the tuple.
func (s *RuleSet) Covers(t access.Tuple) bool {
	for _, r := range s.Rules {
		if r.Scope != t.Scope || r.APIGroup != t.Group {
			continue
		}
		if !slices.Contains(r.Resources, t.Resource) || !slices.Contains(r.Verbs, t.Verb) {
			continue
		}
		if len(r.ResourceNames) == 0 || (t.Name != "" && slices.Contains(r.ResourceNames, t.Name)) {
			return true
		}
	}
	return false
}

// Grants enumerates every tuple the rules grant.
func (s *RuleSet) Grants() []access.Tuple {
	granted := make([]access.Tuple, 0)
	for _, r := range s.Rules {
		names := r.ResourceNames
		if len(names) == 0 {
			names = []string{""}
		}
		for _, res := range r.Resources {
			for _, v := range r.Verbs {
				for _, n := range names {
					granted = append(granted, access.Tuple{Group: r.APIGroup, Resource: res, Verb: v, Name: n, Scope: r.Scope})
				}
			}
		}
	}
	return granted
}

// Synthesize reduces a set of access tuples into the smallest set of rules that grants every
// tuple and nothing else. Tuples are grouped by API group and scope; resources sharing the same
// verbs and the same resource names are merged into one rule. Rules of different groups or
// different scopes are never merged.
//
// A resource collected with more than one scope fails with a ConflictingScopeError.
func Synthesize(set *access.TupleSet) (*RuleSet, error) {
	tuples := set.List()
	if err := checkScopes(set, tuples); err != nil {
		return nil, err
	}

	type resourceKey struct {
		group    string
		scope    codegen.Scope
		resource string
	}
	unnamed := make(map[resourceKey]map[access.Verb]struct{})
	named := make(map[resourceKey]map[string]map[access.Verb]struct{})
	keys := make([]resourceKey, 0)
	seen := make(map[resourceKey]struct{})
	for _, t := range tuples {
		key := resourceKey{group: t.Group, scope: t.Scope, resource: t.Resource}
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
		if t.Name == "" {
			if unnamed[key] == nil {
				unnamed[key] = make(map[access.Verb]struct{})
			}
			unnamed[key][t.Verb] = struct{}{}
			continue
		}
		// A named tuple already granted by an unnamed one adds nothing.
		if set.Has(access.Tuple{Group: t.Group, Resource: t.Resource, Verb: t.Verb, Scope: t.Scope}) {
			continue
		}
		if named[key] == nil {
			named[key] = make(map[string]map[access.Verb]struct{})
		}
		if named[key][t.Name] == nil {
			named[key][t.Name] = make(map[access.Verb]struct{})
		}
		named[key][t.Name][t.Verb] = struct{}{}
	}

	// Resources sharing group, scope, verbs and names end up in the same bucket.
	type bucketKey struct {
		group string
		scope codegen.Scope
		verbs string
		names string
	}
	buckets := make(map[bucketKey]*Rule)
	order := make([]bucketKey, 0)
	place := func(key resourceKey, verbs []access.Verb, names []string) {
		bk := bucketKey{group: key.group, scope: key.scope, verbs: joinVerbs(verbs), names: strings.Join(names, ",")}
		rule, ok := buckets[bk]
		if !ok {
			rule = &Rule{Scope: key.scope, APIGroup: key.group, Verbs: verbs, ResourceNames: names}
			buckets[bk] = rule
			order = append(order, bk)
		}
		rule.Resources = append(rule.Resources, key.resource)
	}
	for _, key := range keys {
		if verbs, ok := unnamed[key]; ok {
			place(key, sortedVerbs(verbs), nil)
		}
		byVerbs := make(map[string][]string)
		verbSets := make(map[string][]access.Verb)
		verbOrder := make([]string, 0)
		for name, verbs := range named[key] {
			sorted := sortedVerbs(verbs)
			vk := joinVerbs(sorted)
			if _, ok := byVerbs[vk]; !ok {
				verbOrder = append(verbOrder, vk)
				verbSets[vk] = sorted
			}
			byVerbs[vk] = append(byVerbs[vk], name)
		}
		sort.Strings(verbOrder)
		for _, vk := range verbOrder {
			names := byVerbs[vk]
			sort.Strings(names)
			place(key, verbSets[vk], names)
		}
	}

	rules := make([]Rule, 0, len(order))
	for _, bk := range order {
		rule := *buckets[bk]
		sort.Strings(rule.Resources)
		rules = append(rules, rule)
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return CompareRules(rules[i], rules[j]) < 0
	})
	return &RuleSet{Rules: rules}, nil
}

// CompareRules orders rules by API group, resources, verbs in canonical order and
// resource names. Scope only breaks ties.
func CompareRules(a, b Rule) int {
	if c := strings.Compare(a.APIGroup, b.APIGroup); c != 0 {
		return c
	}
	if c := slices.Compare(a.Resources, b.Resources); c != 0 {
		return c
	}
	if c := slices.CompareFunc(a.Verbs, b.Verbs, access.CompareVerbs); c != 0 {
		return c
	}
	if c := slices.Compare(a.ResourceNames, b.ResourceNames); c != 0 {
		return c
	}
	return strings.Compare(string(a.Scope), string(b.Scope))
}

func checkScopes(set *access.TupleSet, tuples []access.Tuple) error {
	type resourceKey struct {
		group    string
		resource string
	}
	scopes := make(map[resourceKey][]codegen.Scope)
	sources := make(map[resourceKey][]string)
	order := make([]resourceKey, 0)
	for _, t := range tuples {
		// Subresources share the scope of their parent.
		base, _, _ := strings.Cut(t.Resource, "/")
		key := resourceKey{group: t.Group, resource: base}
		if _, ok := scopes[key]; !ok {
			order = append(order, key)
		}
		if !slices.Contains(scopes[key], t.Scope) {
			scopes[key] = append(scopes[key], t.Scope)
		}
		for _, src := range set.Sources(t) {
			if !slices.Contains(sources[key], src) {
				sources[key] = append(sources[key], src)
			}
		}
	}
	for _, key := range order {
		if len(scopes[key]) > 1 {
			found := scopes[key]
			slices.Sort(found)
			srcs := sources[key]
			slices.Sort(srcs)
			return &codegen.ConflictingScopeError{
				Group:    key.group,
				Resource: key.resource,
				Scopes:   found,
				Sources:  srcs,
			}
		}
	}
	return nil
}

func sortedVerbs(set map[access.Verb]struct{}) []access.Verb {
	verbs := make([]access.Verb, 0, len(set))
	for v := range set {
		verbs = append(verbs, v)
	}
	slices.SortFunc(verbs, access.CompareVerbs)
	return verbs
}

func joinVerbs(verbs []access.Verb) string {
	parts := make([]string, len(verbs))
	for i, v := range verbs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}
