package models

import "fmt"

// ComponentKind identifies which binding family a component belongs to
type ComponentKind int

const (
	KindLayer ComponentKind = iota
	KindService
)

// String returns the lowercase name used in directives and dependency names
func (k ComponentKind) String() string {
	switch k {
	case KindLayer:
		return "layer"
	case KindService:
		return "service"
	default:
		return "unknown"
	}
}

// ParseComponentKind converts a directive keyword into a ComponentKind
func ParseComponentKind(s string) (ComponentKind, error) {
	switch s {
	case "layer":
		return KindLayer, nil
	case "service":
		return KindService, nil
	default:
		return 0, fmt.Errorf("unknown component kind: %s", s)
	}
}

// MethodRole classifies a qualifying builder method
type MethodRole int

const (
	RoleSetter MethodRole = iota
	RoleToggle
	RoleFactory
)

// String returns the role name for diagnostics
func (r MethodRole) String() string {
	switch r {
	case RoleSetter:
		return "setter"
	case RoleToggle:
		return "toggle"
	case RoleFactory:
		return "factory"
	default:
		return "unknown"
	}
}
