package state

import (
	"maps"
	"reflect"
	"slices"

	"github.com/starford/notebookd/internal/refs"
)

// Table maps references to records. A Table is never modified after it is
// built; With and Without return new tables.
type Table[R ~string, V any] struct {
	byRef map[R]*V
}

// Table instantiations held by State.
type (
	ContentTable     = Table[refs.ContentRef, Content]
	KernelTable      = Table[refs.KernelRef, Kernel]
	KernelspecsTable = Table[refs.KernelspecsRef, Kernelspecs]
	HostTable        = Table[refs.HostRef, Host]
)

// Get returns the record for ref. The empty reference, an unknown
// reference and a nil table all report absent.
func (t *Table[R, V]) Get(ref R) (*V, bool) {
	if t == nil || ref == "" {
		return nil, false
	}
	v, ok := t.byRef[ref]
	return v, ok
}

// With returns a copy of t with ref set to v.
func (t *Table[R, V]) With(ref R, v *V) *Table[R, V] {
	out := &Table[R, V]{byRef: make(map[R]*V, t.Len()+1)}
	if t != nil {
		maps.Copy(out.byRef, t.byRef)
	}
	out.byRef[ref] = v
	return out
}

// Without returns a copy of t without ref, or t itself when ref is absent.
func (t *Table[R, V]) Without(ref R) *Table[R, V] {
	if _, ok := t.Get(ref); !ok {
		return t
	}
	out := &Table[R, V]{byRef: maps.Clone(t.byRef)}
	delete(out.byRef, ref)
	return out
}

// Len returns the number of records.
func (t *Table[R, V]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byRef)
}

// Refs returns the references in sorted order.
func (t *Table[R, V]) Refs() []R {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.byRef))
}

// Config is the flat user configuration. Like tables it is immutable.
type Config struct {
	values map[string]any
}

// NewConfig builds a configuration from m.
func NewConfig(m map[string]any) *Config {
	return &Config{values: maps.Clone(m)}
}

// Get returns the value stored at key.
func (c *Config) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

// String returns the value at key when it is a non-empty string, def
// otherwise.
func (c *Config) String(key, def string) string {
	v, ok := c.Get(key)
	if !ok {
		return def
	}
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// With returns a copy of c with key set to value.
func (c *Config) With(key string, value any) *Config {
	out := &Config{values: make(map[string]any, c.Len()+1)}
	if c != nil {
		maps.Copy(out.values, c.values)
	}
	out.values[key] = value
	return out
}

// Merge returns c overlaid with m. When every key in m already holds an
// equal value, c itself is returned.
func (c *Config) Merge(m map[string]any) *Config {
	changed := false
	for k, v := range m {
		if old, ok := c.Get(k); !ok || !reflect.DeepEqual(old, v) {
			changed = true
			break
		}
	}
	if !changed {
		return c
	}
	out := &Config{values: make(map[string]any, c.Len()+len(m))}
	if c != nil {
		maps.Copy(out.values, c.values)
	}
	maps.Copy(out.values, m)
	return out
}

// Map returns a copy of the configuration.
func (c *Config) Map() map[string]any {
	out := make(map[string]any, c.Len())
	if c != nil {
		maps.Copy(out, c.values)
	}
	return out
}

// Len returns the number of keys.
func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.values)
}
