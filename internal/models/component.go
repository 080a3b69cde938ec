package models

// MethodDescriptor is one qualifying builder method found on the target type
type MethodDescriptor struct {
	Name           string     // method or function identifier, e.g. WithMaxTimes
	ArgumentName   string     // host-side parameter name in snake_case, e.g. max_times
	ArgumentType   string     // raw textual type from the source, not yet mapped
	Docs           []string   // trimmed, non-blank documentation lines
	Role           MethodRole // setter, toggle or factory
	ReturnsPointer bool       // whether the method returns *T rather than T
	Line           int        // source line, for diagnostics
}

// IsToggle reports whether the method takes no parameter and flips a boolean option
func (m MethodDescriptor) IsToggle() bool {
	return m.Role == RoleToggle
}

// IsFactory reports whether the method is the designated constructor
func (m MethodDescriptor) IsFactory() bool {
	return m.Role == RoleFactory
}

// ComponentDescriptor is the extracted builder surface of one target type
type ComponentDescriptor struct {
	Component   string             // logical component name, e.g. retry
	TypeName    string             // target type name, e.g. RetryLayer
	TypeFound   bool               // whether a declaration of TypeName was present
	PackageName string             // package clause of the parsed source file
	SourceFile  string             // path or name of the parsed file
	Variant     Variant            // rules used during extraction
	Methods     []MethodDescriptor // surviving methods in source order
	Excluded    []Exclusion        // candidates dropped during extraction
}

// Factory returns the honored factory descriptor, if any
func (c *ComponentDescriptor) Factory() (MethodDescriptor, bool) {
	factoryName := "New" + c.TypeName
	for _, m := range c.Methods {
		if m.IsFactory() && m.Name == factoryName {
			return m, true
		}
	}
	return MethodDescriptor{}, false
}

// Mutators returns every non-factory descriptor in source order
func (c *ComponentDescriptor) Mutators() []MethodDescriptor {
	var result []MethodDescriptor
	for _, m := range c.Methods {
		if !m.IsFactory() {
			result = append(result, m)
		}
	}
	return result
}

// Exclusion records a function that was looked at but not kept
type Exclusion struct {
	Name   string // function or method identifier
	Reason string // human readable reason, for verbose diagnostics
	Line   int    // source line
}
