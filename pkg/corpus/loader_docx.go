package corpus

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DocxLoader extracts the paragraph text of a .docx file. A docx is a ZIP
// archive whose word/document.xml holds the content, so no external library
// is needed.
type DocxLoader struct{}

func NewDocxLoader() *DocxLoader {
	return &DocxLoader{}
}

func (l *DocxLoader) Load(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive '%s': %w", path, err)
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("invalid docx '%s': word/document.xml not found", path)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	text, err := extractDocxText(rc)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx '%s': %w", path, err)
	}
	return text, nil
}

// extractDocxText streams the document XML and collects the character data
// of every <w:t> node, one line per paragraph.
func extractDocxText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var result strings.Builder
	var paragraph strings.Builder
	inText := false

	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch se := t.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "p":
				paragraph.Reset()
			case "t":
				inText = true
			}
		case xml.CharData:
			if inText {
				paragraph.Write(se)
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "t":
				inText = false
			case "p":
				if text := strings.TrimSpace(paragraph.String()); text != "" {
					result.WriteString(text)
					result.WriteByte('\n')
				}
			}
		}
	}
	return result.String(), nil
}
