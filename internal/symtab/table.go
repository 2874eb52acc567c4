// Package symtab is a flat symbol table whose keys carry the scope path of
// the declaration ("class::method::name").
package symtab

import (
	"sort"
	"strings"
)

const Separator = "::"

type Table[V any] struct {
	scopes  []string
	entries map[string]V
}

func New[V any]() *Table[V] {
	return &Table[V]{entries: make(map[string]V)}
}

func (table *Table[V]) PushScope(name string) {
	table.scopes = append(table.scopes, name)
}

// No-op when no scope is open.
func (table *Table[V]) PopScope() {
	if len(table.scopes) == 0 {
		return
	}
	table.scopes = table.scopes[:len(table.scopes)-1]
}

func (table *Table[V]) Depth() int { return len(table.scopes) }

// Root scope is the empty string.
func (table *Table[V]) CurrentScopeAsString() string {
	return strings.Join(table.scopes, Separator)
}

func Qualify(scope, name string) string {
	return scope + Separator + name
}

// Drops the innermost frame of scope. ok is false once the root scope has
// been reached.
func RemoveOneLevelScope(scope string) (string, bool) {
	if scope == "" {
		return "", false
	}
	index := strings.LastIndex(scope, Separator)
	if index < 0 {
		return "", true
	}
	return scope[:index], true
}

// Inserts name in the current scope. An entry already defined at this exact
// scope is overwritten and returned.
func (table *Table[V]) Add(name string, value V) (V, bool) {
	key := Qualify(table.CurrentScopeAsString(), name)
	previous, existed := table.entries[key]
	table.entries[key] = value
	return previous, existed
}

func (table *Table[V]) LookupScopedName(qualified string) (V, bool) {
	value, ok := table.entries[qualified]
	return value, ok
}

// Resolves name starting from the current scope and walking outwards until
// the root scope has been tried. A miss is a normal result.
func (table *Table[V]) LookupNameInCurrentScope(name string) (V, bool) {
	scope := table.CurrentScopeAsString()
	for {
		if value, ok := table.entries[Qualify(scope, name)]; ok {
			return value, true
		}
		outer, ok := RemoveOneLevelScope(scope)
		if !ok {
			var empty V
			return empty, false
		}
		scope = outer
	}
}

func (table *Table[V]) Len() int { return len(table.entries) }

type Entry[V any] struct {
	Name  string
	Value V
}

// Every entry sorted by qualified name
func (table *Table[V]) Entries() []Entry[V] {
	entries := make([]Entry[V], 0, len(table.entries))
	for name, value := range table.entries {
		entries = append(entries, Entry[V]{Name: name, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}
