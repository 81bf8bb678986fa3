package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/sanonone/lexvek/pkg/corpus"
	"github.com/tidwall/btree"
)

// freqItem associates a word's occurrence count with its vocabulary index
// inside the frequency B-Tree.
type freqItem struct {
	Count int
	Index int
}

// freqItemLess orders items by count, using the vocabulary index as a
// tie-breaker to keep equal-count words distinct. The index is inverted so
// that descending traversal visits equal counts in alphabetical order.
func freqItemLess(a, b freqItem) bool {
	if a.Count < b.Count {
		return true
	}
	if a.Count > b.Count {
		return false
	}
	return a.Index > b.Index
}

// Vocabulary is the immutable mapping between the distinct words of a corpus
// and their matrix row indices. Words are sorted lexicographically and each
// index is the word's sorted position, so the mapping is a bijection over
// [0, Size()). A secondary B-Tree orders words by occurrence count for
// frequency queries.
type Vocabulary struct {
	words   []string
	indices map[string]int
	counts  []int
	total   int
	freq    *btree.BTreeG[freqItem]
}

// BuildVocabulary scans the corpus and returns its vocabulary.
//
// With minCount <= 1 every distinct token becomes a vocabulary word. Higher
// values drop words occurring fewer than minCount times before indices are
// assigned, so the kept words still map onto a contiguous [0, V) range.
//
// Returns ErrEmptyCorpus when the corpus holds no tokens, or when min-count
// filtering leaves no word standing.
func BuildVocabulary(c corpus.Corpus, minCount int) (*Vocabulary, error) {
	occurrences := make(map[string]int)
	seen := 0
	for _, doc := range c {
		for _, token := range doc {
			occurrences[token]++
			seen++
		}
	}
	if seen == 0 {
		return nil, fmt.Errorf("cannot build vocabulary: %w", ErrEmptyCorpus)
	}

	words := make([]string, 0, len(occurrences))
	for word, n := range occurrences {
		if minCount > 1 && n < minCount {
			continue
		}
		words = append(words, word)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no word occurs at least %d times: %w", minCount, ErrEmptyCorpus)
	}
	sort.Strings(words)

	counts := make([]int, len(words))
	for i, word := range words {
		counts[i] = occurrences[word]
	}
	return newVocabulary(words, counts), nil
}

// NewVocabulary rebuilds a vocabulary from an explicit word list, as read
// back from a persisted model. The word order is preserved verbatim because
// it must stay aligned with the embedding matrix rows. counts may be nil
// when the source format does not carry occurrence counts.
func NewVocabulary(words []string, counts []int) (*Vocabulary, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("cannot build vocabulary: %w", ErrEmptyCorpus)
	}
	if counts != nil && len(counts) != len(words) {
		return nil, fmt.Errorf("got %d counts for %d words", len(counts), len(words))
	}
	if counts == nil {
		counts = make([]int, len(words))
	}

	unique := make(map[string]struct{}, len(words))
	for _, word := range words {
		if _, dup := unique[word]; dup {
			return nil, fmt.Errorf("duplicate word %q in vocabulary", word)
		}
		unique[word] = struct{}{}
	}
	return newVocabulary(words, counts), nil
}

func newVocabulary(words []string, counts []int) *Vocabulary {
	v := &Vocabulary{
		words:   words,
		indices: make(map[string]int, len(words)),
		counts:  counts,
		freq:    btree.NewBTreeG[freqItem](freqItemLess),
	}
	for i, word := range words {
		v.indices[word] = i
		v.total += counts[i]
		v.freq.Set(freqItem{Count: counts[i], Index: i})
	}
	return v
}

// Size returns the number of vocabulary words V.
func (v *Vocabulary) Size() int {
	return len(v.words)
}

// Word returns the word at index i.
func (v *Vocabulary) Word(i int) string {
	return v.words[i]
}

// Index returns the matrix row index of word and whether the word is known.
func (v *Vocabulary) Index(word string) (int, bool) {
	i, ok := v.indices[word]
	return i, ok
}

// Words returns the sorted word list. The slice is shared with the
// vocabulary and must not be modified.
func (v *Vocabulary) Words() []string {
	return v.words
}

// Count returns how many times word occurs in the corpus, 0 if unknown.
func (v *Vocabulary) Count(word string) int {
	if i, ok := v.indices[word]; ok {
		return v.counts[i]
	}
	return 0
}

// CountAt returns the occurrence count of the word at index i.
func (v *Vocabulary) CountAt(i int) int {
	return v.counts[i]
}

// TotalTokens returns the summed occurrence counts of all vocabulary words.
func (v *Vocabulary) TotalTokens() int {
	return v.total
}

// MostFrequent returns up to n words ordered by descending occurrence
// count, equal counts in alphabetical order.
func (v *Vocabulary) MostFrequent(n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	v.freq.Descend(freqItem{Count: math.MaxInt}, func(item freqItem) bool {
		out = append(out, v.words[item.Index])
		return len(out) < n
	})
	return out
}

// WordsWithCountAtLeast returns every word occurring at least min times,
// ordered like MostFrequent.
func (v *Vocabulary) WordsWithCountAtLeast(min int) []string {
	var out []string
	v.freq.Descend(freqItem{Count: math.MaxInt}, func(item freqItem) bool {
		if item.Count < min {
			return false
		}
		out = append(out, v.words[item.Index])
		return true
	})
	return out
}
