package cli

import (
	"fmt"
	"path/filepath"

	"github.com/toyz/bindgen/internal/annotations"
	"github.com/toyz/bindgen/internal/errors"
	"github.com/toyz/bindgen/internal/utils"
)

// DirectiveScanner finds //bindgen: directives below a set of directories
type DirectiveScanner struct {
	fileProcessor *utils.FileProcessor
	scanner       *annotations.Scanner
}

// NewDirectiveScanner creates a new directive scanner
func NewDirectiveScanner() *DirectiveScanner {
	return &DirectiveScanner{
		fileProcessor: utils.NewFileProcessor(),
		scanner:       annotations.NewScanner(),
	}
}

// Scan returns every directive in the non-generated Go files matched by the
// patterns. Supports Go-style patterns like "./..." for recursive scanning.
// Two directives of one directory may not write the same output file.
// All malformed or conflicting directives are reported together.
func (s *DirectiveScanner) Scan(patterns []string) ([]annotations.Directive, error) {
	files, err := s.fileProcessor.SourceFiles(patterns)
	if err != nil {
		return nil, errors.Wrap(errors.FileSystemErrorCode, "failed to scan directories", err)
	}

	var directives []annotations.Directive
	problems := errors.NewMultipleErrors()
	seen := make(map[string]annotations.Directive)
	outputs := make(map[string]annotations.Directive)

	for _, file := range files {
		found, err := s.scanner.ScanFile(file)
		if err != nil {
			problems.Add(err)
			continue
		}
		for _, d := range found {
			dir := filepath.Dir(d.Location.File)
			key := dir + "|" + d.Key()
			if prev, ok := seen[key]; ok {
				problems.Add(errors.DirectiveError(d.Location,
					fmt.Sprintf("duplicate directive for %s %s, first declared at %s", d.Kind, d.Component, prev.Location)))
				continue
			}

			// each directive must own its output file
			out := outputPath(dir, d.Output, d.Component)
			if prev, ok := outputs[out]; ok {
				problems.Add(errors.DirectiveError(d.Location,
					fmt.Sprintf("%s %s writes %s, already written by %s %s at %s", d.Kind, d.Component, filepath.Base(out), prev.Kind, prev.Component, prev.Location)).
					WithSuggestion("Set a distinct -out on one of the directives"))
				continue
			}

			seen[key] = d
			outputs[out] = d
			directives = append(directives, d)
		}
	}

	if err := problems.ErrorOrNil(); err != nil {
		return nil, err
	}
	return directives, nil
}
