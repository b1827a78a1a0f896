package validation

import (
	"fmt"
	"sort"
	"strings"
)

const (
	typeObject = "object"
	typeList   = "list"
	typeString = "string"
	typeBool   = "boolean"
)

// walker accumulates issues while descending through generic input
type walker struct {
	issues []Issue
}

func (w *walker) add(issue Issue) {
	w.issues = append(w.issues, issue)
}

// objectAt checks that v is an object. present is false when the key was absent.
func (w *walker) objectAt(path Path, v any, present bool, allowed []string) *object {
	if !present {
		w.add(Issue{Path: path, Code: CodeRequired})
		return nil
	}
	m, ok := asMap(v)
	if !ok {
		w.add(Issue{Path: path, Code: CodeWrongType, Expected: typeObject})
		return nil
	}
	return &object{w: w, path: path, m: m, allowed: allowed}
}

// object is a map being validated field by field. done reports keys outside allowed.
type object struct {
	w       *walker
	path    Path
	m       map[string]any
	allowed []string
}

func (o *object) get(key string) (any, bool) {
	v, ok := o.m[key]
	return v, ok
}

func (o *object) done() {
	var unknown []string
	for key := range o.m {
		if !contains(o.allowed, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return
	}
	sort.Strings(unknown)
	o.w.add(Issue{Path: o.path, Code: CodeUnknownKeys, Keys: unknown})
}

// requiredString reads a non-empty string
func (o *object) requiredString(key string) string {
	path := o.path.Key(key)
	v, ok := o.get(key)
	if !ok {
		o.w.add(Issue{Path: path, Code: CodeRequired})
		return ""
	}
	s, ok := v.(string)
	if !ok {
		o.w.add(Issue{Path: path, Code: CodeWrongType, Expected: typeString})
		return ""
	}
	if s == "" {
		o.w.add(Issue{Path: path, Code: CodeEmptyString})
	}
	return s
}

// optionalString reads a string that may be absent or empty
func (o *object) optionalString(key string) string {
	v, ok := o.get(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		o.w.add(Issue{Path: o.path.Key(key), Code: CodeWrongType, Expected: typeString})
		return ""
	}
	return s
}

func (o *object) optionalBool(key string) (*bool, bool) {
	v, ok := o.get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.(bool)
	if !ok {
		o.w.add(Issue{Path: o.path.Key(key), Code: CodeWrongType, Expected: typeBool})
		return nil, false
	}
	return &b, true
}

// enum reads one of options. def is used when the key is absent; an empty
// def makes the key required.
func (o *object) enum(key string, options []string, def string) string {
	path := o.path.Key(key)
	v, ok := o.get(key)
	if !ok {
		if def == "" {
			o.w.add(Issue{Path: path, Code: CodeRequired})
		}
		return def
	}
	return o.w.enumValue(path, v, options)
}

func (o *object) optionalEnum(key string, options []string) string {
	v, ok := o.get(key)
	if !ok {
		return ""
	}
	return o.w.enumValue(o.path.Key(key), v, options)
}

func (w *walker) enumValue(path Path, v any, options []string) string {
	s, ok := v.(string)
	if !ok {
		w.add(Issue{Path: path, Code: CodeWrongType, Expected: typeString})
		return ""
	}
	if !contains(options, s) {
		w.add(Issue{Path: path, Code: CodeInvalidEnum, Options: options})
		return ""
	}
	return s
}

// object reads a required nested object
func (o *object) object(key string, allowed ...string) *object {
	v, ok := o.get(key)
	return o.w.objectAt(o.path.Key(key), v, ok, allowed)
}

// optionalObject reads a nested object that may be absent
func (o *object) optionalObject(key string, allowed ...string) (*object, bool) {
	v, ok := o.get(key)
	if !ok {
		return nil, false
	}
	return o.w.objectAt(o.path.Key(key), v, true, allowed), true
}

// list reads a required list with at least min elements
func (o *object) list(key string, min int) ([]any, bool) {
	path := o.path.Key(key)
	v, ok := o.get(key)
	if !ok {
		o.w.add(Issue{Path: path, Code: CodeRequired})
		return nil, false
	}
	return o.w.listValue(path, v, min)
}

// optionalList reads a list that may be absent
func (o *object) optionalList(key string) ([]any, bool) {
	v, ok := o.get(key)
	if !ok {
		return nil, false
	}
	return o.w.listValue(o.path.Key(key), v, 0)
}

func (w *walker) listValue(path Path, v any, min int) ([]any, bool) {
	items, ok := v.([]any)
	if !ok {
		w.add(Issue{Path: path, Code: CodeWrongType, Expected: typeList})
		return nil, false
	}
	if len(items) < min {
		w.add(Issue{Path: path, Code: CodeEmptyList})
		return items, false
	}
	return items, true
}

// stringList reads an optional list of strings
func (o *object) stringList(key string) []string {
	items, ok := o.optionalList(key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			o.w.add(Issue{Path: o.path.Key(key).Index(i), Code: CodeWrongType, Expected: typeString})
			continue
		}
		out = append(out, s)
	}
	return out
}

// each runs fn on every element of a list as an object with the allowed keys
func (w *walker) each(path Path, items []any, allowed []string, fn func(i int, o *object)) {
	for i, item := range items {
		o := w.objectAt(path.Index(i), item, true, allowed)
		if o == nil {
			continue
		}
		fn(i, o)
		o.done()
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func defaultSectionID(index int) string {
	return fmt.Sprintf("section-%d", index+1)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
