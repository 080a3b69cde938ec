package models

// TypeInfo is the mapped representation of one textual source type.
// An empty Label marks the type as unsupported.
type TypeInfo struct {
	GoType  string   // parameter type in the generated constructor, e.g. int64
	Label   string   // host-side display label, e.g. int
	Default string   // host-side default expression, e.g. None
	IsBool  bool     // boolean-shaped option
	Getter  string   // kwargs accessor expression, e.g. binding.Int[int64]
	Parse   string   // fallible conversion applied before the setter call, e.g. time.ParseDuration
	Imports []string // extra imports required by GoType, Getter or Parse
}

// Supported reports whether the type has a host-side mapping
func (t TypeInfo) Supported() bool {
	return t.Label != ""
}

// Nillable reports whether absence can be expressed without a pointer
func (t TypeInfo) Nillable() bool {
	return len(t.GoType) > 2 && t.GoType[:2] == "[]"
}
