// Package corpus defines the tokenized text corpus consumed by the training
// pipeline, along with the tokenizer and the file loaders that build one from
// data on disk.
package corpus

// Document is an ordered sequence of tokens from a single document.
// Token order matters: context windows are computed over positions.
type Document []string

// Corpus is an ordered collection of documents. Context windows never cross
// document boundaries.
type Corpus []Document

// TokenCount returns the total number of tokens across all documents.
func (c Corpus) TokenCount() int {
	n := 0
	for _, doc := range c {
		n += len(doc)
	}
	return n
}

// Filter returns a copy of the corpus with stop words of the given language
// removed from every document. Document count and order are preserved; a
// document may end up empty.
func (c Corpus) Filter(language string) Corpus {
	out := make(Corpus, len(c))
	for i, doc := range c {
		out[i] = FilterStopWords(doc, language)
	}
	return out
}
