package corpus

import (
	"archive/zip"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Run("LowercasesAndSplits", func(t *testing.T) {
		got := Tokenize("The Quick, brown FOX!")
		want := []string{"the", "quick", "brown", "fox"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("UnicodeLetters", func(t *testing.T) {
		got := Tokenize("perché è così")
		want := []string{"perché", "è", "così"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("DigitsAndPunctuationDropped", func(t *testing.T) {
		got := Tokenize("call 911 now!!!")
		want := []string{"call", "now"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		if got := Tokenize("   \n\t"); len(got) != 0 {
			t.Errorf("expected no tokens, got %v", got)
		}
	})
}

func TestSplitDocuments(t *testing.T) {
	c := SplitDocuments("a b c\n\nb c d\n   \n")
	if len(c) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(c))
	}
	if !reflect.DeepEqual(c[0], Document{"a", "b", "c"}) {
		t.Errorf("doc 0: got %v", c[0])
	}
	if !reflect.DeepEqual(c[1], Document{"b", "c", "d"}) {
		t.Errorf("doc 1: got %v", c[1])
	}
	if c.TokenCount() != 6 {
		t.Errorf("TokenCount: got %d, want 6", c.TokenCount())
	}
}

func TestFilterStopWords(t *testing.T) {
	tokens := []string{"the", "cat", "is", "on", "the", "mat"}

	t.Run("English", func(t *testing.T) {
		got := FilterStopWords(tokens, "english")
		want := []string{"cat", "mat"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("UnknownLanguageIsNoop", func(t *testing.T) {
		got := FilterStopWords(tokens, "klingon")
		if !reflect.DeepEqual(got, tokens) {
			t.Errorf("got %v, want input unchanged", got)
		}
	})

	t.Run("EmptyLanguageIsNoop", func(t *testing.T) {
		got := FilterStopWords(tokens, "")
		if !reflect.DeepEqual(got, tokens) {
			t.Errorf("got %v, want input unchanged", got)
		}
	})
}

func TestCorpusFilter(t *testing.T) {
	c := Corpus{{"la", "casa", "è", "grande"}, {"il", "gatto"}}
	got := c.Filter("italian")

	if len(got) != 2 {
		t.Fatalf("document count changed: got %d, want 2", len(got))
	}
	if !reflect.DeepEqual(got[0], Document{"casa", "grande"}) {
		t.Errorf("doc 0: got %v", got[0])
	}
	if !reflect.DeepEqual(got[1], Document{"gatto"}) {
		t.Errorf("doc 1: got %v", got[1])
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	content := "The quick brown fox.\n\nJumps over the lazy dog.\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(c) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(c))
	}
	if c.TokenCount() != 9 {
		t.Errorf("TokenCount: got %d, want 9", c.TokenCount())
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

// writeDocx builds a minimal Word document: a ZIP holding word/document.xml
// with one <w:p> paragraph per entry.
func writeDocx(t *testing.T, path string, paragraphs []string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	var body strings.Builder
	body.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)
	if _, err := w.Write([]byte(body.String())); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDocxLoader(t *testing.T) {
	t.Run("ExtractsParagraphs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.docx")
		writeDocx(t, path, []string{"Alpha beta", "Gamma"})

		c, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}
		if len(c) != 2 {
			t.Fatalf("expected 2 documents, got %d", len(c))
		}
		if !reflect.DeepEqual(c[0], Document{"alpha", "beta"}) {
			t.Errorf("doc 0: got %v", c[0])
		}
		if !reflect.DeepEqual(c[1], Document{"gamma"}) {
			t.Errorf("doc 1: got %v", c[1])
		}
	})

	t.Run("MissingDocumentXML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.docx")
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		zw := zip.NewWriter(f)
		if _, err := zw.Create("word/styles.xml"); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		f.Close()

		if _, err := NewDocxLoader().Load(path); err == nil {
			t.Error("expected an error for a docx without word/document.xml")
		}
	})

	t.Run("NotAnArchive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fake.docx")
		if err := os.WriteFile(path, []byte("plain text, not a zip"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewDocxLoader().Load(path); err == nil {
			t.Error("expected an error for a non-zip file")
		}
	})
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.txt", "beta words here")
	write("a.txt", "alpha text")
	write(".hidden", "skip me entirely")

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(c) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(c))
	}
	// WalkDir visits in lexical order, so a.txt comes first.
	if !reflect.DeepEqual(c[0], Document{"alpha", "text"}) {
		t.Errorf("doc 0: got %v", c[0])
	}
	if !reflect.DeepEqual(c[1], Document{"beta", "words", "here"}) {
		t.Errorf("doc 1: got %v", c[1])
	}
}
