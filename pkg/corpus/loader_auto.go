package corpus

import (
	"path/filepath"
	"strings"
)

// AutoLoader automatically selects the correct loader based on file extension.
type AutoLoader struct {
	textLoader Loader
	pdfLoader  Loader
	docxLoader Loader
}

func NewAutoLoader() *AutoLoader {
	return &AutoLoader{
		textLoader: NewTextLoader(),
		pdfLoader:  NewPDFLoader(),
		docxLoader: NewDocxLoader(),
	}
}

func (l *AutoLoader) Load(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf":
		return l.pdfLoader.Load(path)
	case ".docx":
		return l.docxLoader.Load(path)
	default:
		// Everything else is read as plain text. Tokenization discards
		// whatever binary noise survives a wrong guess.
		return l.textLoader.Load(path)
	}
}
