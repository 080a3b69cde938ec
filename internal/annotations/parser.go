package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/bindgen/internal/errors"
	"github.com/toyz/bindgen/internal/models"
	"github.com/toyz/bindgen/internal/utils"
)

// directiveAST is the grammar of one directive comment
type directiveAST struct {
	Kind      string       `parser:"Marker @('layer' | 'service')"`
	Component string       `parser:"@Name"`
	Options   []*optionAST `parser:"@@*"`
}

// optionAST is a `-key=value` option
type optionAST struct {
	Key   string  `parser:"Dash @Name"`
	Value *string `parser:"( Equals @(String | Name | Path) )?"`
}

var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Marker", Pattern: `//bindgen:`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Path", Pattern: `[./][^\s=]*`},
	{Name: "Name", Pattern: `[a-zA-Z0-9_][a-zA-Z0-9_.\-/]*`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Parser parses //bindgen: directive comments
type Parser struct {
	parser *participle.Parser[directiveAST]
}

// NewParser creates a directive parser
func NewParser() *Parser {
	return &Parser{
		parser: participle.MustBuild[directiveAST](
			participle.Lexer(directiveLexer),
			participle.Elide("Whitespace"),
			participle.Unquote("String"),
		),
	}
}

// Parse parses a single directive comment
func (p *Parser) Parse(comment string, loc errors.SourceLocation) (*Directive, error) {
	raw := strings.TrimSpace(comment)
	if !strings.HasPrefix(raw, DirectivePrefix) {
		return nil, errors.DirectiveError(loc, fmt.Sprintf("not a bindgen directive: %q", raw))
	}

	ast, err := p.parser.ParseString(loc.File, raw)
	if err != nil {
		return nil, errors.WrapDirectiveError(loc, err)
	}

	kind, err := models.ParseComponentKind(ast.Kind)
	if err != nil {
		return nil, errors.WrapDirectiveError(loc, err)
	}
	if err := utils.ValidateComponentName("component")(ast.Component); err != nil {
		return nil, errors.WrapDirectiveError(loc, err)
	}

	d := &Directive{
		Kind:      kind,
		Component: ast.Component,
		Location:  loc,
		Raw:       raw,
	}

	seen := make(map[string]bool)
	for _, opt := range ast.Options {
		if seen[opt.Key] {
			return nil, errors.DirectiveError(loc, fmt.Sprintf("option -%s given twice", opt.Key))
		}
		seen[opt.Key] = true

		if opt.Value == nil || *opt.Value == "" {
			return nil, errors.DirectiveError(loc, fmt.Sprintf("option -%s requires a value", opt.Key))
		}
		if err := d.apply(opt.Key, *opt.Value); err != nil {
			return nil, errors.WrapDirectiveError(loc, err)
		}
	}

	return d, nil
}

func (d *Directive) apply(key, value string) error {
	switch key {
	case OptionPrefix:
		d.Prefix = value
	case OptionOut:
		if !strings.HasSuffix(value, ".go") {
			return fmt.Errorf("-out must name a .go file, got %q", value)
		}
		d.Output = value
	case OptionGraph:
		if err := utils.IsOneOf("graph", GraphModfile, GraphPackages)(value); err != nil {
			return err
		}
		d.Graph = value
	default:
		return fmt.Errorf("unknown option -%s", key)
	}
	return nil
}
