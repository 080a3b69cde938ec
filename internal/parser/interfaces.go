package parser

import "github.com/toyz/bindgen/internal/models"

// SourceExtractor defines the interface for reading the builder surface of a target type
type SourceExtractor interface {
	ExtractFile(path, component string) (*models.ComponentDescriptor, error)
	ExtractSource(filename string, src []byte, component string) (*models.ComponentDescriptor, error)
}

var _ SourceExtractor = (*Extractor)(nil)
