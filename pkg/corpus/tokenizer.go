package corpus

import (
	"regexp"
	"strings"
)

// tokenizerRegex extracts words from raw text.
// \p{L}+ matches sequences of letters in any language (better than \w+).
var tokenizerRegex = regexp.MustCompile(`\p{L}+`)

// Tokenize splits a text into a slice of lowercase words.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	return tokenizerRegex.FindAllString(text, -1)
}

// SplitDocuments tokenizes a text treating each non-blank line as one
// document. This matches the usual layout of corpus files, one sentence or
// record per line.
func SplitDocuments(text string) Corpus {
	var c Corpus
	for _, line := range strings.Split(text, "\n") {
		tokens := Tokenize(line)
		if len(tokens) == 0 {
			continue
		}
		c = append(c, Document(tokens))
	}
	return c
}
