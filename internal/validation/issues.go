package validation

import "strconv"

// Code classifies why a value was rejected
type Code string

const (
	CodeRequired    Code = "required"
	CodeWrongType   Code = "wrong_type"
	CodeEmptyString Code = "empty_string"
	CodeEmptyList   Code = "empty_list"
	CodeInvalidEnum Code = "invalid_option"
	CodeUnknownKeys Code = "unknown_keys"
	CodeDuplicateID Code = "duplicate_id"
	CodeUnparsable  Code = "unparsable"
)

// PathElem is one step from the root: a field key or a 0-based list index
type PathElem struct {
	Key   string
	Index int
	IsKey bool
}

// Path is a root-to-leaf field path
type Path []PathElem

// Key returns p extended by a field key
func (p Path) Key(k string) Path {
	return append(p[:len(p):len(p)], PathElem{Key: k, IsKey: true})
}

// Index returns p extended by a list index
func (p Path) Index(i int) Path {
	return append(p[:len(p):len(p)], PathElem{Index: i})
}

// String renders the path in dotted form, e.g. sections[2].content.items[0]
func (p Path) String() string {
	out := ""
	for _, e := range p {
		if e.IsKey {
			if out != "" {
				out += "."
			}
			out += e.Key
			continue
		}
		out += "[" + strconv.Itoa(e.Index) + "]"
	}
	return out
}

// Issue is one validation finding before localization
type Issue struct {
	Path     Path
	Code     Code
	Expected string   // expected type name for CodeWrongType
	Options  []string // allowed values for CodeInvalidEnum
	Keys     []string // offending keys for CodeUnknownKeys
	Value    string   // duplicate id for CodeDuplicateID
	Index    int      // 1-based index of the first owner for CodeDuplicateID
	Detail   string   // parser message for CodeUnparsable
}
