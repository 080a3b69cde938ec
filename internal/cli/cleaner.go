package cli

import (
	"github.com/toyz/bindgen/internal/errors"
	"github.com/toyz/bindgen/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes bindgen wrappers from the specified directories.
// Only *_gen.go files starting with the generated-code header are removed.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	removed, err := c.fileProcessor.CleanDirectories(directories)
	if err != nil {
		return removed, errors.Wrap(errors.FileSystemErrorCode, "failed to clean generated files", err)
	}
	return removed, nil
}
