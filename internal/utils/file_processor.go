package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	Recursive       bool
	SkipErrors      bool
}

// DefaultGoFileFilter filters for .go files, excluding tests and generated wrappers
func DefaultGoFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		name := info.Name()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			!strings.HasSuffix(name, "_gen.go")
	}
}

// GeneratedFileFilter matches *_gen.go files. The header is checked separately.
func GeneratedFileFilter() FileFilter {
	return func(path string, info os.DirEntry) bool {
		return !info.IsDir() && strings.HasSuffix(info.Name(), "_gen.go")
	}
}

// DefaultDirectoryFilter skips common directories that shouldn't contain source code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
		"_examples":    true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		if path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			return false
		}

		return !skipDirs[name]
	}
}

// ExpandPattern turns a Go-style path pattern into a root directory and
// a recursion flag: "./..." walks everything below ".".
func ExpandPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}
	if strings.HasSuffix(pattern, "/...") {
		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "/"
		}
		return root, true
	}
	return pattern, false
}

// WalkFiles walks through files below rootDir with filtering
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path == rootDir {
				return nil
			}
			if !options.Recursive {
				return filepath.SkipDir
			}
			if options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}

		return nil
	})

	return matchedFiles, err
}

// SourceFiles lists the non-generated, non-test Go files matched by the
// given Go-style patterns, in walk order.
func (fp *FileProcessor) SourceFiles(patterns []string) ([]string, error) {
	return fp.collect(patterns, DefaultGoFileFilter())
}

// IsGeneratedFile reports whether the first line of path is the bindgen header
func (fp *FileProcessor) IsGeneratedFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	return strings.TrimSpace(scanner.Text()) == GeneratedHeader, nil
}

// CleanDirectories removes generated wrappers matched by the patterns.
// Files that merely end in _gen.go without the header are left alone.
func (fp *FileProcessor) CleanDirectories(patterns []string) ([]string, error) {
	candidates, err := fp.collect(patterns, GeneratedFileFilter())
	if err != nil {
		return nil, err
	}

	var removedFiles []string
	for _, path := range candidates {
		generated, err := fp.IsGeneratedFile(path)
		if err != nil {
			return removedFiles, fmt.Errorf("failed to inspect %s: %w", path, err)
		}
		if !generated {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removedFiles, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removedFiles = append(removedFiles, path)
	}

	return removedFiles, nil
}

func (fp *FileProcessor) collect(patterns []string, filter FileFilter) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		root, recursive := ExpandPattern(pattern)
		if _, err := os.Stat(root); err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
		}

		matched, err := fp.WalkFiles(root, FileWalkOptions{
			FileFilter:      filter,
			DirectoryFilter: DefaultDirectoryFilter(),
			Recursive:       recursive,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}

		for _, path := range matched {
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}

	return files, nil
}
