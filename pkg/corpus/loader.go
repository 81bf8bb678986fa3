package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader defines the contract for reading a file and extracting its text content.
type Loader interface {
	// Load reads the file at the given path and returns its text content.
	Load(path string) (string, error)
}

// TextLoader is a generic loader for plain text files (txt, md, code, csv).
type TextLoader struct{}

func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

func (l *TextLoader) Load(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// LoadFile reads a corpus file where each non-blank line is one document.
// The text is extracted with a format-aware loader (plain text, PDF, docx)
// before tokenization.
func LoadFile(path string) (Corpus, error) {
	text, err := NewAutoLoader().Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus file '%s': %w", path, err)
	}
	return SplitDocuments(text), nil
}

// LoadDir walks dir and builds a corpus with one document per regular file.
// Hidden files and directories are skipped. The walk order is lexical, so
// the document order is deterministic.
func LoadDir(dir string) (Corpus, error) {
	loader := NewAutoLoader()
	var c Corpus

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		text, err := loader.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load '%s': %w", path, err)
		}
		tokens := Tokenize(text)
		if len(tokens) == 0 {
			return nil
		}
		c = append(c, Document(tokens))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
