package templates

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"

	"github.com/toyz/bindgen/internal/errors"
)

// WrapperData is everything the wrapper-file template needs
type WrapperData struct {
	Header      string      // generated-code marker line
	Notes       []string    // extra header comment lines
	PackageName string      // package clause of the generated file
	Imports     string      // rendered import block
	DocConst    string      // name of the docstring constant
	Docstring   string      // host-side docstring
	WrapperName string      // wrapper type name
	TypeName    string      // embedded field name
	Qualified   string      // alias.TypeName
	BaseVar     string      // local variable holding the built value
	Params      []ParamData // constructor parameters, in order
	Body        []string    // constructor statements, already indented
	Module      string      // registry module key
	Kind        string      // binding.Kind constant expression
}

// ParamData describes one constructor parameter
type ParamData struct {
	Name      string // host-side argument name
	Ident     string // Go identifier
	ParamType string // Go type in the constructor signature
	Label     string // host-side type label
	Default   string // host-side default expression
	Required  bool   // no default, must be supplied
	Extract   string // statements reading the value from kwargs, already indented
	CallArg   string // expression passed to the constructor from the kwargs adapter
}

var funcMap = template.FuncMap{
	"quote":     strconv.Quote,
	"paramList": paramList,
	"argList":   argList,
}

func paramList(params []ParamData) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Ident + " " + p.ParamType
	}
	return strings.Join(parts, ", ")
}

func argList(params []ParamData) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.CallArg
	}
	return strings.Join(parts, ", ")
}

// Execute renders a registered template
func Execute(registry *TemplateRegistry, name string, data interface{}) (string, error) {
	text, ok := registry.Get(name)
	if !ok {
		return "", errors.WrapTemplateError(name, "find", errors.New(errors.TemplateErrorCode, "template not registered"))
	}
	return ExecuteTemplate(name, text, data)
}

// ExecuteTemplate parses and renders a template string
func ExecuteTemplate(name, templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Funcs(funcMap).Parse(templateStr)
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return buf.String(), nil
}
