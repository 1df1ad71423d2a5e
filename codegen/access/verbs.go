package access

// Verb is an API verb from the fixed RBAC vocabulary.
type Verb string

const (
	VerbGet              = Verb("get")
	VerbList             = Verb("list")
	VerbWatch            = Verb("watch")
	VerbCreate           = Verb("create")
	VerbUpdate           = Verb("update")
	VerbPatch            = Verb("patch")
	VerbDelete           = Verb("delete")
	VerbDeleteCollection = Verb("deletecollection")
)

// Verbs is the full vocabulary in canonical order.
var Verbs = []Verb{
	VerbGet,
	VerbList,
	VerbWatch,
	VerbCreate,
	VerbUpdate,
	VerbPatch,
	VerbDelete,
	VerbDeleteCollection,
}

var (
	// ReadVerbs are the verbs needed to read and watch a resource.
	ReadVerbs = []Verb{VerbGet, VerbList, VerbWatch}
	// WriteVerbs are the verbs needed to modify a resource.
	WriteVerbs = []Verb{VerbCreate, VerbUpdate, VerbPatch, VerbDelete}
)

var verbRank = func() map[Verb]int {
	m := make(map[Verb]int, len(Verbs))
	for i, v := range Verbs {
		m[v] = i
	}
	return m
}()

// Valid reports whether v is part of the vocabulary.
func (v Verb) Valid() bool {
	_, ok := verbRank[v]
	return ok
}

// CompareVerbs orders verbs by their position in the canonical vocabulary.
// Unknown verbs sort after every known verb, lexicographically.
func CompareVerbs(a, b Verb) int {
	ra, okA := verbRank[a]
	rb, okB := verbRank[b]
	switch {
	case okA && okB:
		return ra - rb
	case okA:
		return -1
	case okB:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
