package models

// Target describes where the generated wrapper lives and what it wraps
type Target struct {
	PackageName  string // package clause of the generated file
	ImportPath   string // import path of the wrapped module's package
	ImportAlias  string // identifier used for the wrapped package in generated code
	BindingPath  string // import path of the runtime binding package
	ModulePath   string // import path of the consuming package, used as registry module
	SourceModule string // module@version the binding was generated from, for the header
}
