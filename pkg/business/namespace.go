package business

import (
	"iter"
	"slices"
)

// Export is a single named value of a Namespace.
type Export[K ~string, V any] struct {
	Name  K
	Value V
}

// Namespace is a set of named exports that remembers the order names were first defined in.
// The zero value and a nil *Namespace are empty namespaces; only the former accepts writes.
type Namespace[K ~string, V any] struct {
	keys   []K
	values map[K]V
}

func NewNamespace[K ~string, V any](capacity int) *Namespace[K, V] {
	return &Namespace[K, V]{
		keys:   make([]K, 0, capacity),
		values: make(map[K]V, capacity),
	}
}

func NamespaceOf[K ~string, V any](exports ...Export[K, V]) *Namespace[K, V] {
	ns := NewNamespace[K, V](len(exports))
	for _, e := range exports {
		ns.Set(e.Name, e.Value)
	}
	return ns
}

// Set defines or redefines name. Redefining keeps the original position.
func (n *Namespace[K, V]) Set(name K, value V) {
	if n.values == nil {
		n.values = make(map[K]V)
	}
	if _, ok := n.values[name]; !ok {
		n.keys = append(n.keys, name)
	}
	n.values[name] = value
}

func (n *Namespace[K, V]) Get(name K) (V, bool) {
	if n == nil {
		var zero V
		return zero, false
	}
	v, ok := n.values[name]
	return v, ok
}

func (n *Namespace[K, V]) Has(name K) bool {
	_, ok := n.Get(name)
	return ok
}

func (n *Namespace[K, V]) Delete(name K) bool {
	if !n.Has(name) {
		return false
	}
	delete(n.values, name)
	n.keys = slices.DeleteFunc(n.keys, func(k K) bool { return k == name })
	return true
}

func (n *Namespace[K, V]) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

// Keys returns a copy of the names in enumeration order.
func (n *Namespace[K, V]) Keys() []K {
	if n == nil {
		return []K{}
	}
	return append(make([]K, 0, len(n.keys)), n.keys...)
}

func (n *Namespace[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if n == nil {
			return
		}
		for _, k := range n.keys {
			if !yield(k, n.values[k]) {
				return
			}
		}
	}
}

// value is the lookup used after the names were already enumerated, so a miss cannot happen.
func (n *Namespace[K, V]) value(name K) V {
	return n.values[name]
}
