package annotations

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"

	"github.com/toyz/bindgen/internal/errors"
)

// Scanner collects directives from Go source files
type Scanner struct {
	parser  *Parser
	fileSet *token.FileSet
}

// NewScanner creates a directive scanner
func NewScanner() *Scanner {
	return &Scanner{
		parser:  NewParser(),
		fileSet: token.NewFileSet(),
	}
}

// ScanFile reads path and returns its directives in source order
func (s *Scanner) ScanFile(path string) ([]Directive, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return s.ScanSource(path, src)
}

// ScanSource returns the directives of in-memory source. Every malformed
// directive is reported, not just the first.
func (s *Scanner) ScanSource(filename string, src []byte) ([]Directive, error) {
	file, err := parser.ParseFile(s.fileSet, filename, src, parser.ParseComments)
	if err != nil {
		return nil, errors.WrapParseError(filename, err)
	}

	var (
		directives []Directive
		problems   = errors.NewMultipleErrors()
	)
	for _, group := range file.Comments {
		for _, c := range group.List {
			if !IsDirective(c.Text) {
				continue
			}
			d, err := s.parser.Parse(c.Text, s.location(c))
			if err != nil {
				problems.Add(err)
				continue
			}
			d.Package = file.Name.Name
			directives = append(directives, *d)
		}
	}

	if err := problems.ErrorOrNil(); err != nil {
		return nil, err
	}
	return directives, nil
}

func (s *Scanner) location(c *ast.Comment) errors.SourceLocation {
	pos := s.fileSet.Position(c.Pos())
	return errors.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}
