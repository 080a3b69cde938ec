package parser

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"

	"github.com/toyz/bindgen/internal/errors"
	"github.com/toyz/bindgen/internal/models"
	"github.com/toyz/bindgen/internal/utils"
)

// Extractor reads Go source and collects the builder methods of one target type
type Extractor struct {
	fileSet *token.FileSet
	variant models.Variant
}

// NewExtractor creates an extractor for the given variant
func NewExtractor(variant models.Variant) *Extractor {
	return &Extractor{
		fileSet: token.NewFileSet(),
		variant: variant,
	}
}

// Variant returns the rules this extractor applies
func (e *Extractor) Variant() models.Variant {
	return e.variant
}

// TypeNameFor returns the target type name of a component, e.g. retry -> RetryLayer
func (e *Extractor) TypeNameFor(component string) string {
	return utils.PascalCase(component) + e.variant.TypeSuffix
}

// ExtractFile reads and extracts a source file from disk
func (e *Extractor) ExtractFile(path, component string) (*models.ComponentDescriptor, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapParseError(path, err)
	}
	return e.ExtractSource(path, src, component)
}

// ExtractSource extracts the descriptor for component from in-memory source.
// Only read and syntax failures are errors; everything else is a normal,
// possibly empty, result.
func (e *Extractor) ExtractSource(filename string, src []byte, component string) (*models.ComponentDescriptor, error) {
	file, err := parser.ParseFile(e.fileSet, filename, src, parser.ParseComments)
	if err != nil {
		return nil, errors.WrapParseError(filename, err)
	}

	typeName := e.TypeNameFor(component)
	desc := &models.ComponentDescriptor{
		Component:   component,
		TypeName:    typeName,
		PackageName: file.Name.Name,
		SourceFile:  filename,
		Variant:     e.variant,
	}

	selfNames := e.collectSelfNames(file, desc)

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		if fn.Recv != nil {
			e.extractMethod(fn, selfNames, desc)
		} else if e.variant.FactoryDetection {
			e.extractFactory(fn, selfNames, desc)
		}
	}

	return desc, nil
}

// collectSelfNames returns the target type name plus every alias of it
func (e *Extractor) collectSelfNames(file *ast.File, desc *models.ComponentDescriptor) map[string]bool {
	names := map[string]bool{desc.TypeName: true}

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if ts.Name.Name == desc.TypeName {
				desc.TypeFound = true
				continue
			}
			if ts.Assign.IsValid() && e.getTypeString(ts.Type) == desc.TypeName {
				names[ts.Name.Name] = true
			}
		}
	}

	return names
}

func (e *Extractor) extractMethod(fn *ast.FuncDecl, selfNames map[string]bool, desc *models.ComponentDescriptor) {
	if len(fn.Recv.List) == 0 {
		return
	}
	recvType := fn.Recv.List[0].Type
	if star, ok := recvType.(*ast.StarExpr); ok {
		recvType = star.X
	}
	switch recvType.(type) {
	case *ast.IndexExpr, *ast.IndexListExpr:
		if name := baseIdent(recvType); selfNames[name] {
			e.exclude(desc, fn, ReasonGenericReceiver)
		}
		return
	}
	if !selfNames[e.getTypeString(recvType)] {
		return
	}

	if !fn.Name.IsExported() {
		e.exclude(desc, fn, ReasonUnexported)
		return
	}

	returnsPointer, ok := e.returnsSelf(fn.Type, selfNames)
	if !ok {
		e.exclude(desc, fn, ReasonReturnType)
		return
	}

	params := flattenFields(fn.Type.Params)
	method := models.MethodDescriptor{
		Name:           fn.Name.Name,
		Docs:           docLines(fn.Doc),
		ReturnsPointer: returnsPointer,
		Line:           e.fileSet.Position(fn.Pos()).Line,
	}

	switch len(params) {
	case 0:
		rest, ok := strings.CutPrefix(fn.Name.Name, e.variant.TogglePrefix)
		if !ok || rest == "" {
			e.exclude(desc, fn, ReasonNoTogglePrefix)
			return
		}
		method.Role = models.RoleToggle
		method.ArgumentName = utils.SnakeCase(rest)
		method.ArgumentType = "bool"
	case 1:
		method.Role = models.RoleSetter
		method.ArgumentName = e.argumentName(params[0], fn.Name.Name)
		method.ArgumentType = e.getTypeString(params[0].typ)
	default:
		e.exclude(desc, fn, ReasonTooManyParams)
		return
	}

	desc.Methods = append(desc.Methods, method)
}

func (e *Extractor) extractFactory(fn *ast.FuncDecl, selfNames map[string]bool, desc *models.ComponentDescriptor) {
	if fn.Name.Name != FactoryPrefix+desc.TypeName {
		if strings.HasPrefix(fn.Name.Name, FactoryPrefix) {
			if _, ok := e.returnsSelf(fn.Type, selfNames); ok {
				e.exclude(desc, fn, ReasonNotFactoryShaped)
			}
		}
		return
	}

	returnsPointer, ok := e.returnsSelf(fn.Type, selfNames)
	if !ok {
		e.exclude(desc, fn, ReasonReturnType)
		return
	}

	params := flattenFields(fn.Type.Params)
	switch len(params) {
	case 0:
		e.exclude(desc, fn, ReasonParameterless)
	case 1:
		name := utils.SnakeCase(params[0].name)
		if name == "" {
			name = DefaultFactoryArgument
		}
		desc.Methods = append(desc.Methods, models.MethodDescriptor{
			Name:           fn.Name.Name,
			ArgumentName:   name,
			ArgumentType:   e.getTypeString(params[0].typ),
			Docs:           docLines(fn.Doc),
			Role:           models.RoleFactory,
			ReturnsPointer: returnsPointer,
			Line:           e.fileSet.Position(fn.Pos()).Line,
		})
	default:
		e.exclude(desc, fn, ReasonTooManyParams)
	}
}

// returnsSelf checks for exactly one result of the target type, a pointer
// to it, or an alias of either.
func (e *Extractor) returnsSelf(ft *ast.FuncType, selfNames map[string]bool) (pointer bool, ok bool) {
	results := flattenFields(ft.Results)
	if len(results) != 1 {
		return false, false
	}
	text := e.getTypeString(results[0].typ)
	pointer = strings.HasPrefix(text, "*")
	return pointer, selfNames[strings.TrimPrefix(text, "*")]
}

// argumentName prefers the parameter identifier and falls back to the
// method name without the toggle prefix.
func (e *Extractor) argumentName(p field, methodName string) string {
	if p.name != "" && p.name != "_" {
		return utils.SnakeCase(p.name)
	}
	rest, ok := strings.CutPrefix(methodName, e.variant.TogglePrefix)
	if !ok || rest == "" {
		rest = methodName
	}
	return utils.SnakeCase(rest)
}

func (e *Extractor) exclude(desc *models.ComponentDescriptor, fn *ast.FuncDecl, reason string) {
	desc.Excluded = append(desc.Excluded, models.Exclusion{
		Name:   fn.Name.Name,
		Reason: reason,
		Line:   e.fileSet.Position(fn.Pos()).Line,
	})
}

type field struct {
	name string
	typ  ast.Expr
}

// flattenFields expands `a, b int` into two entries
func flattenFields(list *ast.FieldList) []field {
	if list == nil {
		return nil
	}
	var fields []field
	for _, f := range list.List {
		if len(f.Names) == 0 {
			fields = append(fields, field{typ: f.Type})
			continue
		}
		for _, name := range f.Names {
			fields = append(fields, field{name: name.Name, typ: f.Type})
		}
	}
	return fields
}

func docLines(group *ast.CommentGroup) []string {
	if group == nil {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(group.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func baseIdent(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return baseIdent(t.X)
	case *ast.IndexListExpr:
		return baseIdent(t.X)
	}
	return ""
}

// getTypeString converts an AST type expression to its textual form
func (e *Extractor) getTypeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + e.getTypeString(t.X)
	case *ast.SelectorExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name + "." + t.Sel.Name
		}
		return t.Sel.Name
	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + e.getTypeString(t.Elt)
		}
		if lit, ok := t.Len.(*ast.BasicLit); ok {
			return "[" + lit.Value + "]" + e.getTypeString(t.Elt)
		}
		return "[...]" + e.getTypeString(t.Elt)
	case *ast.Ellipsis:
		return "..." + e.getTypeString(t.Elt)
	case *ast.MapType:
		return "map[" + e.getTypeString(t.Key) + "]" + e.getTypeString(t.Value)
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return "interface{}"
		}
		return "interface{...}"
	case *ast.FuncType:
		var params []string
		for _, p := range flattenFields(t.Params) {
			params = append(params, e.getTypeString(p.typ))
		}
		var results []string
		for _, r := range flattenFields(t.Results) {
			results = append(results, e.getTypeString(r.typ))
		}
		out := "func(" + strings.Join(params, ", ") + ")"
		switch len(results) {
		case 0:
		case 1:
			out += " " + results[0]
		default:
			out += " (" + strings.Join(results, ", ") + ")"
		}
		return out
	case *ast.ChanType:
		switch t.Dir {
		case ast.SEND:
			return "chan<- " + e.getTypeString(t.Value)
		case ast.RECV:
			return "<-chan " + e.getTypeString(t.Value)
		default:
			return "chan " + e.getTypeString(t.Value)
		}
	case *ast.ParenExpr:
		return e.getTypeString(t.X)
	case *ast.IndexExpr:
		return e.getTypeString(t.X) + "[" + e.getTypeString(t.Index) + "]"
	default:
		return "unknown"
	}
}
