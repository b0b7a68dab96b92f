package business

import (
	"reflect"
	"strings"

	"github.com/slamdev/importtoarray/pkg/integration"
)

// MarkerPrefix marks synthetic module metadata such as __esModule.
// Every name starting with it is skipped, not only the well-known ones.
const MarkerPrefix = "__"

// ImportToArray returns the values of ns in enumeration order, skipping names that start with MarkerPrefix.
// The result is never nil and ns is left untouched.
func ImportToArray[K ~string, V any](ns *Namespace[K, V]) []V {
	return ImportToArrayWithPrefix(ns, MarkerPrefix)
}

// ImportToArrayWithPrefix is ImportToArray with a custom marker. An empty prefix keeps every export.
func ImportToArrayWithPrefix[K ~string, V any](ns *Namespace[K, V], prefix string) []V {
	names := integration.FilterSlice(ns.Keys(), integration.WithoutPrefix[K](prefix))
	return integration.MapSlice(names, ns.value)
}

// ImportMapToArray is ImportToArray for a plain map.
// Maps are unordered, so values come out ordered by name.
func ImportMapToArray[M ~map[K]V, K ~string, V any](m M) []V {
	names := integration.FilterSlice(integration.SortedMapKeys(m), integration.WithoutPrefix[K](MarkerPrefix))
	return integration.MapSlice(names, func(k K) V { return m[k] })
}

// ImportStructToArray treats the exported fields of a struct as its exports, in declaration order.
// Field naming follows encoding/json: a json tag name wins over the field name, fields tagged "-" are
// skipped, and among fields sharing a name only a sole tagged one survives, otherwise all are dropped.
// Embedded structs are not traversed; an embedded field with a json tag name is an ordinary export.
func ImportStructToArray[V any](v any) ([]V, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, integration.NewValidationErrorf("cannot enumerate exports of nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, integration.NewValidationErrorf("cannot enumerate exports of %s, struct expected", describeKind(rv))
	}

	target := reflect.TypeFor[V]()
	rt := rv.Type()
	candidates := make([]structExport, 0, rt.NumField())
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, tagged, ok := exportName(field)
		if !ok || (field.Anonymous && !tagged) {
			continue
		}
		candidates = append(candidates, structExport{name: name, tagged: tagged, value: rv.Field(i)})
	}

	ns := NewNamespace[string, reflect.Value](len(candidates))
	for _, e := range dominantExports(candidates) {
		ns.Set(e.name, e.value)
	}

	fields := ImportToArray(ns)
	out := make([]V, 0, len(fields))
	for _, fv := range fields {
		if !fv.Type().AssignableTo(target) {
			return nil, integration.NewValidationErrorf("cannot use export of type %s as %s", fv.Type(), target)
		}
		var value V
		reflect.ValueOf(&value).Elem().Set(fv)
		out = append(out, value)
	}
	return out, nil
}

type structExport struct {
	name   string
	tagged bool
	value  reflect.Value
}

// dominantExports resolves name clashes, keeping declaration order of the survivors.
func dominantExports(candidates []structExport) []structExport {
	byName := make(map[string][]int, len(candidates))
	for i, c := range candidates {
		byName[c.name] = append(byName[c.name], i)
	}

	out := make([]structExport, 0, len(candidates))
	for i, c := range candidates {
		clash := byName[c.name]
		if len(clash) == 1 {
			out = append(out, c)
			continue
		}
		tagged := integration.FilterSlice(clash, func(j int) bool { return candidates[j].tagged })
		if len(tagged) == 1 && tagged[0] == i {
			out = append(out, c)
		}
	}
	return out
}

func exportName(field reflect.StructField) (name string, tagged bool, ok bool) {
	tag, found := field.Tag.Lookup("json")
	if !found {
		return field.Name, false, true
	}
	if tag == "-" {
		return "", false, false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true, true
	}
	return field.Name, false, true
}

func describeKind(rv reflect.Value) string {
	if !rv.IsValid() {
		return "nil"
	}
	return rv.Type().String()
}
