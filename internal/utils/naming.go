package utils

import (
	"go/token"
	"strings"
	"unicode"
)

// SnakeCase converts MaxTimes, maxTimes, HTTPTimeout or max-times to
// max_times style.
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if r == '-' || r == ' ' || r == '_' {
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				if !strings.HasSuffix(b.String(), "_") {
					b.WriteByte('_')
				}
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.Trim(b.String(), "_")
}

// PascalCase converts max-retry_x to MaxRetryX. Segments keep their
// inner casing.
func PascalCase(s string) string {
	var b strings.Builder
	for _, part := range splitWords(s) {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// CamelCase converts max_times to maxTimes
func CamelCase(s string) string {
	parts := splitWords(s)
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, part := range parts[1:] {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// SafeIdent returns name, suffixed when it would collide with a Go
// keyword, a predeclared identifier or one of the reserved names.
func SafeIdent(name string, reserved ...string) string {
	if name == "" {
		return "arg"
	}
	taken := token.IsKeyword(name) || predeclared[name]
	for _, r := range reserved {
		if r == name {
			taken = true
		}
	}
	if taken {
		return name + "Arg"
	}
	return name
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
}

var predeclared = map[string]bool{
	"bool": true, "byte": true, "error": true, "float32": true, "float64": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"rune": true, "string": true, "uint": true, "uint8": true, "uint16": true,
	"uint32": true, "uint64": true, "uintptr": true, "any": true,
	"true": true, "false": true, "nil": true, "iota": true,
	"append": true, "cap": true, "len": true, "make": true, "new": true,
	"copy": true, "delete": true, "panic": true, "print": true, "min": true,
	"max": true, "clear": true, "close": true, "recover": true,
}
