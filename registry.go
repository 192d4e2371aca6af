package combo

import (
	"fmt"
	"sort"
)

// --- User token types ------------------------------------------------------

// TypeTag describes an application-defined token type.
type TypeTag struct {
	name  string
	Type  TokenType
	Unamb func(*ParsedToken) string // printer for the canonical serialization, may be nil
	UData interface{}               // user data
}

// Name gets the tag's name.
func (tag *TypeTag) Name() string {
	return tag.name
}

// String is a debug Stringer for tags.
func (tag *TypeTag) String() string {
	return fmt.Sprintf("<type '%s':%d>", tag.name, int(tag.Type))
}

// === Registry ==============================================================

// Registry hands out token type numbers for user-defined types (map-like
// semantics). There is no global registry: clients create one and pass it
// to whoever needs to print or inspect user tokens.
type Registry struct {
	Table  map[string]*TypeTag
	byType map[TokenType]*TypeTag
	next   TokenType
}

// NewRegistry creates an empty registry. The first type handed out is TTUser.
func NewRegistry() *Registry {
	return &Registry{
		Table:  make(map[string]*TypeTag),
		byType: make(map[TokenType]*TypeTag),
		next:   TTUser,
	}
}

// Resolve checks for a type in the registry.
// Returns a tag or nil.
func (r *Registry) Resolve(name string) *TypeTag {
	return r.Table[name]
}

// ResolveOrDefine finds a type in the registry and registers a new one
// if not found. Returns the tag and a flag, signalling wether the tag has
// already been present.
//
func (r *Registry) ResolveOrDefine(name string) (*TypeTag, bool) {
	if len(name) == 0 {
		return nil, false
	}
	found := true
	tag := r.Resolve(name)
	if tag == nil {
		tag, _ = r.Define(name, nil)
		found = false
	}
	return tag, found
}

// Define registers a new type under a name, which may not be empty.
// An existing type with this name is replaced, but its type number stays
// reserved. Returns the new tag and the previously stored tag (or nil).
//
func (r *Registry) Define(name string, unamb func(*ParsedToken) string) (*TypeTag, *TypeTag) {
	if len(name) == 0 {
		return nil, nil
	}
	tag := &TypeTag{name: name, Type: r.next, Unamb: unamb}
	r.next++
	old := r.Table[name]
	r.Table[name] = tag
	r.byType[tag.Type] = tag
	tracer().Debugf("registry: defined %s", tag)
	return tag, old
}

// Name returns the name of a token type, including predefined types.
func (r *Registry) Name(tt TokenType) string {
	if tag := r.byType[tt]; tag != nil {
		return tag.name
	}
	return tt.String()
}

// Size returns the number of registered types.
func (r *Registry) Size() int {
	return len(r.Table)
}

// Each iterates over all types in order of definition.
func (r *Registry) Each(mapper func(name string, tag *TypeTag)) {
	tags := make([]*TypeTag, 0, len(r.Table))
	for _, tag := range r.Table {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Type < tags[j].Type })
	for _, tag := range tags {
		mapper(tag.name, tag)
	}
}
