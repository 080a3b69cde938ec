package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toyz/bindgen/internal/errors"
	"github.com/toyz/bindgen/internal/models"
	"github.com/toyz/bindgen/internal/templates"
	"github.com/toyz/bindgen/internal/typemap"
	"github.com/toyz/bindgen/internal/utils"
)

// DefaultBindingPath is the runtime package generated code registers into
const DefaultBindingPath = "github.com/toyz/bindgen/pkg/binding"

// Diagnostic codes
const (
	CodeUnsupportedType   = "unsupported-type"
	CodeFactoryCollision  = "factory-collision"
	CodeDuplicateArgument = "duplicate-argument"
)

const (
	baseVar   = "l"
	parsedVar = "parsed"
)

// Assembler renders wrapper source for one component. It performs no I/O.
type Assembler struct {
	templates *templates.TemplateRegistry
}

// NewAssembler creates an assembler using the default templates
func NewAssembler() *Assembler {
	return &Assembler{templates: templates.DefaultTemplateRegistry}
}

type assembly struct {
	desc     *models.ComponentDescriptor
	target   models.Target
	alias    string
	idents   map[string]bool
	imports  *templates.ImportManager
	params   []templates.ParamData
	body     []string
	docs     []string
	names    []string
	diags    []models.Diagnostic
	typeName string
}

// Assemble composes the wrapper for desc. Identical inputs always yield
// byte-identical output.
func (a *Assembler) Assemble(desc *models.ComponentDescriptor, table *typemap.Table, target models.Target) (*models.GeneratedArtifact, error) {
	if desc == nil {
		return nil, errors.New(errors.GenerationErrorCode, "descriptor cannot be nil")
	}
	if target.PackageName == "" {
		return nil, errors.WrapGenerateError(desc.TypeName, errors.New(errors.ConfigurationErrorCode, "target package name is empty"))
	}
	if target.ImportPath == "" {
		return nil, errors.WrapGenerateError(desc.TypeName, errors.New(errors.ConfigurationErrorCode, "target import path is empty"))
	}

	as := a.newAssembly(desc, target)

	// factory first, falling back to the zero value when absent or unmappable
	factory, hasFactory := desc.Factory()
	var factoryInfo models.TypeInfo
	if hasFactory {
		factoryInfo = table.Lookup(factory.ArgumentType)
		hasFactory = factoryInfo.Supported()
	}
	claimed := make(map[string]bool)
	if hasFactory {
		as.addFactory(factory, factoryInfo)
		claimed[factory.ArgumentName] = true
	} else {
		as.body = append(as.body, fmt.Sprintf("\t%s := %s{}", baseVar, as.qualified()))
	}

	mutators := desc.Mutators()
	sort.SliceStable(mutators, func(i, j int) bool {
		return mutators[i].ArgumentName < mutators[j].ArgumentName
	})

	seen := make(map[string]string)
	for _, m := range mutators {
		info := table.Lookup(m.ArgumentType)
		if m.IsToggle() {
			info = table.Lookup("bool")
		}
		switch {
		case !info.Supported():
			as.diag(models.SeverityWarning, CodeUnsupportedType, m,
				fmt.Sprintf("Skipping method %s due to unsupported type %s", m.Name, m.ArgumentType))
			continue
		case claimed[m.ArgumentName]:
			as.diag(models.SeverityInfo, CodeFactoryCollision, m,
				fmt.Sprintf("Skipping method %s: argument %s is taken by %s", m.Name, m.ArgumentName, factory.Name))
			continue
		case seen[m.ArgumentName] != "":
			as.diag(models.SeverityWarning, CodeDuplicateArgument, m,
				fmt.Sprintf("Skipping method %s: argument %s is already provided by %s", m.Name, m.ArgumentName, seen[m.ArgumentName]))
			continue
		}
		seen[m.ArgumentName] = m.Name
		as.addMutator(m, info)
	}

	docstring := composeDocstring(as.typeName, as.docs)

	data := templates.WrapperData{
		Header:      utils.GeneratedHeader,
		PackageName: target.PackageName,
		Imports:     as.imports.GenerateImports(),
		DocConst:    as.typeName + "Doc",
		Docstring:   docstring,
		WrapperName: as.typeName,
		TypeName:    desc.TypeName,
		Qualified:   as.qualified(),
		BaseVar:     baseVar,
		Params:      as.params,
		Body:        as.body,
		Module:      target.ModulePath,
		Kind:        kindConstant(desc.Variant.Kind),
	}
	if target.SourceModule != "" {
		data.Notes = append(data.Notes, "Source: "+target.SourceModule)
	}

	rendered, err := templates.Execute(a.templates, templates.WrapperFileTemplate, data)
	if err != nil {
		return nil, errors.WrapGenerateError(desc.TypeName, err)
	}

	filename := utils.SnakeCase(desc.Component) + "_gen.go"
	formatted, err := utils.FormatGoCode(filename, []byte(rendered))
	if err != nil {
		return nil, errors.WrapGenerateError(desc.TypeName, err).
			WithContext("source", rendered)
	}

	return &models.GeneratedArtifact{
		Component:   desc.Component,
		TypeName:    as.typeName,
		Content:     formatted,
		Docstring:   docstring,
		Parameters:  as.names,
		Diagnostics: as.diags,
	}, nil
}

func (a *Assembler) newAssembly(desc *models.ComponentDescriptor, target models.Target) *assembly {
	bindingPath := target.BindingPath
	if bindingPath == "" {
		bindingPath = DefaultBindingPath
	}

	alias := target.ImportAlias
	if alias == "" {
		alias = desc.PackageName
	}
	reserved := map[string]bool{
		baseVar: true, parsedVar: true, "err": true, "kwargs": true,
		"binding": true, "time": true,
	}
	if alias == "" || reserved[alias] {
		alias += "src"
	}

	as := &assembly{
		desc:     desc,
		target:   target,
		alias:    alias,
		imports:  templates.NewImportManager(),
		typeName: desc.TypeName,
		idents:   reserved,
	}
	as.idents[alias] = true
	as.idents[as.typeName] = true
	as.idents["New"+as.typeName] = true
	as.idents[as.typeName+"Doc"] = true

	as.imports.AddImport(bindingPath)
	as.imports.AddPackageImport(alias, target.ImportPath)

	return as
}

func (as *assembly) qualified() string {
	return as.alias + "." + as.desc.TypeName
}

// ident allocates a unique Go identifier for a host argument name
func (as *assembly) ident(argName string) string {
	base := utils.CamelCase(argName)
	reserved := make([]string, 0, len(as.idents))
	for name := range as.idents {
		reserved = append(reserved, name)
	}
	name := utils.SafeIdent(base, reserved...)
	for i := 2; as.idents[name]; i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}
	as.idents[name] = true
	return name
}

func (as *assembly) addImports(info models.TypeInfo) {
	for _, imp := range info.Imports {
		as.imports.AddImport(imp)
	}
}

func (as *assembly) addFactory(m models.MethodDescriptor, info models.TypeInfo) {
	ident := as.ident(m.ArgumentName)
	as.addImports(info)

	deref := ""
	if m.ReturnsPointer {
		deref = "*"
	}

	arg := ident
	if info.Parse != "" {
		as.body = append(as.body,
			fmt.Sprintf("\t%s, err := %s(%s)", parsedVar, info.Parse, ident),
			"\tif err != nil {",
			fmt.Sprintf("\t\treturn nil, binding.InvalidArgument(%q, err)", m.ArgumentName),
			"\t}",
		)
		arg = parsedVar
	}
	as.body = append(as.body, fmt.Sprintf("\t%s := %s%s.%s(%s)", baseVar, deref, as.alias, m.Name, arg))

	param := templates.ParamData{
		Name:      m.ArgumentName,
		Ident:     ident,
		ParamType: info.GoType,
		Label:     info.Label,
		Required:  true,
		CallArg:   ident,
	}
	extract := []string{
		fmt.Sprintf("\t\t\t%s, err := %s(kwargs, %q)", ident, info.Getter, m.ArgumentName),
		"\t\t\tif err != nil {",
		"\t\t\t\treturn nil, err",
		"\t\t\t}",
	}
	if !info.IsBool {
		extract = append(extract,
			fmt.Sprintf("\t\t\tif %s == nil {", ident),
			fmt.Sprintf("\t\t\t\treturn nil, binding.MissingArgument(%q, %q)", as.typeName, m.ArgumentName),
			"\t\t\t}",
		)
		if !info.Nillable() {
			param.CallArg = "*" + ident
		}
	}
	param.Extract = strings.Join(extract, "\n")

	as.params = append(as.params, param)
	as.names = append(as.names, m.ArgumentName)
	as.docs = append(as.docs, paramDoc(m.ArgumentName, info.Label, false, m.Name, m.Docs))
}

func (as *assembly) addMutator(m models.MethodDescriptor, info models.TypeInfo) {
	ident := as.ident(m.ArgumentName)
	as.addImports(info)

	deref := ""
	if m.ReturnsPointer {
		deref = "*"
	}
	call := func(arg string) string {
		return fmt.Sprintf("\t\t%s = %s%s.%s(%s)", baseVar, deref, baseVar, m.Name, arg)
	}

	param := templates.ParamData{
		Name:    m.ArgumentName,
		Ident:   ident,
		Label:   info.Label,
		Default: info.Default,
		CallArg: ident,
		Extract: strings.Join([]string{
			fmt.Sprintf("\t\t\t%s, err := %s(kwargs, %q)", ident, info.Getter, m.ArgumentName),
			"\t\t\tif err != nil {",
			"\t\t\t\treturn nil, err",
			"\t\t\t}",
		}, "\n"),
	}

	var stmt []string
	switch {
	case m.IsToggle():
		param.ParamType = "bool"
		stmt = []string{fmt.Sprintf("\tif %s {", ident), call(""), "\t}"}
	case info.IsBool:
		param.ParamType = "bool"
		stmt = []string{fmt.Sprintf("\tif %s {", ident), call(ident), "\t}"}
	case info.Nillable():
		param.ParamType = info.GoType
		stmt = []string{fmt.Sprintf("\tif %s != nil {", ident), call(ident), "\t}"}
	case info.Parse != "":
		param.ParamType = "*" + info.GoType
		stmt = []string{
			fmt.Sprintf("\tif %s != nil {", ident),
			fmt.Sprintf("\t\t%s, err := %s(*%s)", parsedVar, info.Parse, ident),
			"\t\tif err != nil {",
			fmt.Sprintf("\t\t\treturn nil, binding.InvalidArgument(%q, err)", m.ArgumentName),
			"\t\t}",
			call(parsedVar),
			"\t}",
		}
	default:
		param.ParamType = "*" + info.GoType
		stmt = []string{fmt.Sprintf("\tif %s != nil {", ident), call("*" + ident), "\t}"}
	}

	as.body = append(as.body, strings.Join(stmt, "\n"))
	as.params = append(as.params, param)
	as.names = append(as.names, m.ArgumentName)
	as.docs = append(as.docs, paramDoc(m.ArgumentName, info.Label, !info.IsBool, m.Name, m.Docs))
}

func (as *assembly) diag(severity models.DiagnosticSeverity, code string, m models.MethodDescriptor, message string) {
	as.diags = append(as.diags, models.Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  message,
		Method:   m.Name,
		Type:     m.ArgumentType,
	})
}

func kindConstant(kind models.ComponentKind) string {
	if kind == models.KindService {
		return "binding.KindService"
	}
	return "binding.KindLayer"
}
