// Package typemap maps textual Go type names found on builder methods to
// their host-side representation.
package typemap

import (
	"strings"

	"github.com/toyz/bindgen/internal/models"
)

// Host-side default expressions
const (
	DefaultFalse = "False"
	DefaultNone  = "None"
)

var integerTypes = []string{
	"int", "int8", "int16", "int32", "int64",
	"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
	"byte", "rune",
}

var floatTypes = []string{"float32", "float64"}

// Table is a total lookup from textual type names to TypeInfo
type Table struct {
	name    string
	entries map[string]models.TypeInfo
}

// Layer returns the table used for interceptor layers.
// Durations are host time deltas passed as float seconds.
func Layer() *Table {
	t := newBaseTable("layer")
	duration := models.TypeInfo{
		GoType:  "time.Duration",
		Label:   "datetime.timedelta",
		Default: DefaultNone,
		Getter:  "binding.Duration",
		Imports: []string{"time"},
	}
	t.entries["time.Duration"] = duration
	t.entries["Duration"] = duration
	return t
}

// Service returns the table used for backend services.
// Durations travel as plain strings and are parsed with time.ParseDuration.
func Service() *Table {
	t := newBaseTable("service")
	duration := models.TypeInfo{
		GoType:  "string",
		Label:   "str",
		Default: DefaultNone,
		Getter:  "binding.String",
		Parse:   "time.ParseDuration",
		Imports: []string{"time"},
	}
	t.entries["time.Duration"] = duration
	t.entries["Duration"] = duration
	return t
}

// For returns the table matching a component kind
func For(kind models.ComponentKind) *Table {
	if kind == models.KindService {
		return Service()
	}
	return Layer()
}

func newBaseTable(name string) *Table {
	t := &Table{name: name, entries: make(map[string]models.TypeInfo)}

	t.entries["bool"] = models.TypeInfo{
		GoType:  "bool",
		Label:   "bool",
		Default: DefaultFalse,
		IsBool:  true,
		Getter:  "binding.Bool",
	}
	t.entries["string"] = models.TypeInfo{
		GoType:  "string",
		Label:   "str",
		Default: DefaultNone,
		Getter:  "binding.String",
	}
	for _, name := range integerTypes {
		t.entries[name] = models.TypeInfo{
			GoType:  name,
			Label:   "int",
			Default: DefaultNone,
			Getter:  "binding.Int[" + name + "]",
		}
	}
	for _, name := range floatTypes {
		t.entries[name] = models.TypeInfo{
			GoType:  name,
			Label:   "float",
			Default: DefaultNone,
			Getter:  "binding.Float[" + name + "]",
		}
	}
	t.entries["[]string"] = models.TypeInfo{
		GoType:  "[]string",
		Label:   "list[str]",
		Default: DefaultNone,
		Getter:  "binding.Strings",
	}

	return t
}

// Name returns the table name, for diagnostics
func (t *Table) Name() string {
	return t.name
}

// Lookup maps a textual type name. It never fails: unknown names yield a
// TypeInfo with an empty Label.
func (t *Table) Lookup(typeName string) models.TypeInfo {
	info, ok := t.entries[strings.TrimSpace(typeName)]
	if !ok {
		return models.TypeInfo{}
	}
	// callers may append to Imports
	info.Imports = append([]string(nil), info.Imports...)
	return info
}

// Supports reports whether a textual type name has a mapping
func (t *Table) Supports(typeName string) bool {
	return t.Lookup(typeName).Supported()
}
