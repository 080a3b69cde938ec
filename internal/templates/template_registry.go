package templates

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// WrapperFileTemplate renders one complete generated wrapper file
const WrapperFileTemplate = "wrapper-file"

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerWrapperTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// Names returns the registered template names
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	return names
}

func (tr *TemplateRegistry) registerWrapperTemplates() {
	tr.templates[WrapperFileTemplate] = `{{.Header}}
{{- range .Notes}}
// {{.}}
{{- end}}

package {{.PackageName}}

{{.Imports}}
// {{.DocConst}} is the host-side documentation of {{.WrapperName}}.
const {{.DocConst}} = {{quote .Docstring}}

// {{.WrapperName}} wraps {{.Qualified}} for the host runtime.
type {{.WrapperName}} struct {
	{{.Qualified}}
}

// New{{.WrapperName}} builds a {{.WrapperName}} from host keyword arguments, see {{.DocConst}}.
func New{{.WrapperName}}({{paramList .Params}}) (*{{.WrapperName}}, error) {
{{- range .Body}}
{{.}}
{{- end}}
	return &{{.WrapperName}}{ {{- .TypeName}}: {{.BaseVar}}}, nil
}

func init() {
	binding.DefaultRegistry.MustRegister(binding.Constructor{
		Module: {{quote .Module}},
		Name:   {{quote .WrapperName}},
		Kind:   {{.Kind}},
		Doc:    {{.DocConst}},
{{- if .Params}}
		Params: []binding.Param{
{{- range .Params}}
			{Name: {{quote .Name}}, Type: {{quote .Label}}, Default: {{quote .Default}}{{if .Required}}, Required: true{{end}}},
{{- end}}
		},
{{- end}}
		New: func(kwargs binding.Kwargs) (any, error) {
{{- range .Params}}
{{.Extract}}
{{- end}}
			return New{{.WrapperName}}({{argList .Params}})
		},
	})
}
`
}

// DefaultTemplateRegistry is the global template registry instance
var DefaultTemplateRegistry = NewTemplateRegistry()
