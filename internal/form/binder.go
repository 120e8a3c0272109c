package form

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/alexisbeaulieu97/formkit/internal/validation"
)

type cacheEntry struct {
	component Component
	owner     *Form
	field     *Field
}

// binder caches bound fields by name so repeated renders get the same
// *Field back. A hit needs the same component and the same owning form.
//
// The rule list is not part of the key: binding a cached name again with
// different rules returns the field bound with the original rules.
type binder struct {
	mu      sync.Mutex
	owner   *Form
	entries map[string]cacheEntry
}

func newBinder(owner *Form) *binder {
	return &binder{owner: owner, entries: make(map[string]cacheEntry)}
}

func (b *binder) use(component Component, name string, rules ...validation.Rule) *Field {
	b.mu.Lock()
	defer b.mu.Unlock()

	if entry, ok := b.entries[name]; ok && entry.owner == b.owner && sameComponent(entry.component, component) {
		return entry.field
	}

	field := newField(component, name, rules, b.owner.ctx)
	b.entries[name] = cacheEntry{component: component, owner: b.owner, field: field}
	b.owner.log.Debug("field bound", map[string]any{"field": name, "rules": len(rules)})
	return field
}

// sameComponent compares components by identity. Function components are
// identified by their closure, so two closures built from the same literal
// are different components; values that cannot be compared never match.
func sameComponent(a, b Component) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return closureOf(a) == closureOf(b)
	}
	if !ta.Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// closureOf returns the closure object behind a function component. A func
// value is a pointer to its closure; reflect's Pointer only reports the
// code address.
func closureOf(c Component) unsafe.Pointer {
	v := reflect.ValueOf(c)
	slot := reflect.New(v.Type())
	slot.Elem().Set(v)
	return *(*unsafe.Pointer)(slot.UnsafePointer())
}
