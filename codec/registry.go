package codec

import (
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/gen"
	"github.com/wippyai/contractgen/hostval"
	"github.com/wippyai/contractgen/schema"
)

// Registry holds every user-defined type known to a set of codecs and
// resolves user-defined references at encode and decode time. Safe for
// concurrent use.
type Registry struct {
	gen   *gen.Generator
	types map[string]*udt
	names map[reflect.Type]string
	nodes sync.Map // nodeKey -> node
	mu    sync.RWMutex
}

// udt is a registered struct or enum.
type udt struct {
	goType   reflect.Type
	entry    *schema.Entry
	artifact *gen.Artifact
	encode   func(env hostval.Env, rv reflect.Value, path []string) (hostval.Val, error)
	decode   func(env hostval.Env, v hostval.Val, rv reflect.Value, path []string) error
}

type nodeKey struct {
	goType reflect.Type
	typ    string
}

// Default is used by NewStruct and NewEnum when no registry is given.
var Default = NewRegistry()

// NewRegistry creates an empty registry. Generator options apply to every
// type registered.
func NewRegistry(opts ...gen.Option) *Registry {
	return &Registry{
		gen:   gen.New(opts...),
		types: make(map[string]*udt),
		names: make(map[reflect.Type]string),
	}
}

// Generator returns the generator used for registered types.
func (r *Registry) Generator() *gen.Generator {
	return r.gen
}

// register adds u under name. Re-registering the same Go type replaces the
// previous entry; a different Go type under a taken name is rejected.
func (r *Registry) register(name string, u *udt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.types[name]; ok && prev.goType != u.goType {
		return errors.New(errors.PhaseGenerate, errors.KindDuplicateName).
			Path(name).
			GoType(u.goType.String()).
			Detail("name already registered for %s", prev.goType).
			Build()
	}
	r.types[name] = u
	r.names[u.goType] = name

	Logger().Debug("registered type",
		zap.String("name", name),
		zap.Stringer("go_type", u.goType))
	return nil
}

// reserve maps t to name while its codec is being built, so that
// self-references use the chosen name. The returned func drops the mapping
// unless register has completed.
func (r *Registry) reserve(t reflect.Type, name string) func() {
	r.mu.Lock()
	prev, had := r.names[t]
	r.names[t] = name
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if u, ok := r.types[name]; ok && u.goType == t {
			return
		}
		if had {
			r.names[t] = prev
		} else {
			delete(r.names, t)
		}
	}
}

func (r *Registry) lookup(name string) (*udt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.types[name]
	return u, ok
}

// nameOf returns the registered name for a Go type, falling back to its
// Go name.
func (r *Registry) nameOf(t reflect.Type) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name, ok := r.names[t]; ok {
		return name
	}
	return t.Name()
}

// Entry returns the schema entry registered under name.
func (r *Registry) Entry(name string) (*schema.Entry, bool) {
	u, ok := r.lookup(name)
	if !ok {
		return nil, false
	}
	return u.entry, true
}

// Entries returns every registered entry ordered by name.
func (r *Registry) Entries() []*schema.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.sortedNames()
	out := make([]*schema.Entry, 0, len(names))
	for _, n := range names {
		out = append(out, r.types[n].entry)
	}
	return out
}

// Artifacts returns the schema artifacts of every registered type that
// requested one, ordered by name.
func (r *Registry) Artifacts() []gen.Artifact {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []gen.Artifact
	for _, n := range r.sortedNames() {
		if a := r.types[n].artifact; a != nil {
			out = append(out, *a)
		}
	}
	return out
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.types))
	for n := range r.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate reports every user-defined reference that names no registered
// type.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	errs := &errors.List{}
	for _, n := range r.sortedNames() {
		e := r.types[n].entry
		check := func(t schema.TypeDef, member string) {
			for _, ref := range udtRefs(t, nil) {
				if _, ok := r.types[ref]; !ok {
					errs.Add(errors.NotFound(errors.PhaseGenerate, "type", ref), n, member)
				}
			}
		}
		if e.Struct != nil {
			for _, f := range e.Struct.Fields {
				check(f.Type, f.Name.String())
			}
		}
		if e.Union != nil {
			for _, c := range e.Union.Cases {
				if c.Payload != nil {
					check(*c.Payload, c.Name.String())
				}
			}
		}
	}
	return errs.Err()
}

func udtRefs(t schema.TypeDef, acc []string) []string {
	switch t.Kind {
	case schema.KindUDT:
		return append(acc, t.Name)
	case schema.KindOption, schema.KindVec, schema.KindSet:
		return udtRefs(*t.Elem, acc)
	case schema.KindMap:
		return udtRefs(*t.Value, udtRefs(*t.Key, acc))
	case schema.KindTuple:
		for _, e := range t.Elems {
			acc = udtRefs(e, acc)
		}
	}
	return acc
}
