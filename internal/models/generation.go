package models

// DiagnosticSeverity represents the severity level of a diagnostic
type DiagnosticSeverity int

const (
	SeverityInfo DiagnosticSeverity = iota
	SeverityWarning
)

// Diagnostic is a non-fatal message produced while assembling an artifact
type Diagnostic struct {
	Severity DiagnosticSeverity
	Code     string
	Message  string
	Method   string
	Type     string
}

// GeneratedArtifact is the rendered wrapper source plus where it belongs.
// The Assembler fills Content; only the Driver decides and sets Path.
type GeneratedArtifact struct {
	Component   string       // logical component name
	TypeName    string       // wrapper type name, e.g. RetryLayer
	Path        string       // destination file, set by the Driver
	Content     []byte       // formatted Go source
	Docstring   string       // composed host-side docstring
	Parameters  []string     // host-side parameter names, in constructor order
	Diagnostics []Diagnostic // skipped methods and other notes
}
