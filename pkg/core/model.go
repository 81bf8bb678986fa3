package core

import (
	"sort"

	"github.com/sanonone/lexvek/pkg/core/distance"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultSimilarLimit is the number of matches returned by similarity
// queries when the caller does not ask for a specific amount.
const DefaultSimilarLimit = 10

// Match pairs a vocabulary word with its similarity score against a query.
type Match struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Model is the terminal artifact of training: the vocabulary plus one
// unit-norm embedding row per word, in vocabulary order. A Model is
// read-only after construction and therefore safe for concurrent use.
type Model struct {
	Vocab   *Vocabulary
	Vectors *mat.Dense // V x k, unit L2 rows

	// Provenance of the training run.
	WindowSize int
	Dimensions int
	MinCount   int
	RunID      string
}

// Size returns the number of words V.
func (m *Model) Size() int {
	return m.Vocab.Size()
}

// Dim returns the embedding dimensionality k.
func (m *Model) Dim() int {
	_, k := m.Vectors.Dims()
	return k
}

// Vector returns the embedding of word and whether the word is known.
// The slice aliases the model's storage and must not be modified.
func (m *Model) Vector(word string) ([]float64, bool) {
	i, ok := m.Vocab.Index(word)
	if !ok {
		return nil, false
	}
	return m.Vectors.RawRowView(i), true
}

// Similar returns up to limit words closest to word by cosine similarity,
// best first. The query word itself is excluded. Equal scores are broken
// alphabetically so results are deterministic.
func (m *Model) Similar(word string, limit int) ([]Match, error) {
	qi, ok := m.Vocab.Index(word)
	if !ok {
		return nil, &UnknownWordError{Word: word}
	}
	exclude := map[int]struct{}{qi: {}}
	return m.rank(m.Vectors.RawRowView(qi), exclude, limit)
}

// Similarity returns the cosine similarity between two vocabulary words.
func (m *Model) Similarity(w1, w2 string) (float64, error) {
	v1, ok := m.Vector(w1)
	if !ok {
		return 0, &UnknownWordError{Word: w1}
	}
	v2, ok := m.Vector(w2)
	if !ok {
		return 0, &UnknownWordError{Word: w2}
	}
	cosine, err := distance.GetFloat64Func(distance.Cosine)
	if err != nil {
		return 0, err
	}
	return cosine(v1, v2)
}

// Analogy answers "a is to b as c is to ?" by ranking the vocabulary
// against the offset vector b - a + c. The three query words are excluded
// from the results.
func (m *Model) Analogy(a, b, c string, limit int) ([]Match, error) {
	exclude := make(map[int]struct{}, 3)
	query := make([][]float64, 3)
	for i, word := range []string{a, b, c} {
		idx, ok := m.Vocab.Index(word)
		if !ok {
			return nil, &UnknownWordError{Word: word}
		}
		exclude[idx] = struct{}{}
		query[i] = m.Vectors.RawRowView(idx)
	}

	target := make([]float64, m.Dim())
	for j := range target {
		target[j] = query[1][j] - query[0][j] + query[2][j]
	}
	// Scale the target back to unit norm so scores stay cosine-like.
	// Ranking order is unaffected either way.
	if norm := floats.Norm(target, 2); norm > zeroNormTolerance {
		floats.Scale(1/norm, target)
	}

	return m.rank(target, exclude, limit)
}

// rank scores every non-excluded row against the query by dot product,
// which equals cosine similarity on unit-norm rows, and returns the best
// limit matches.
func (m *Model) rank(query []float64, exclude map[int]struct{}, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	dot, err := distance.GetFloat64Func(distance.Dot)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, m.Size())
	for i := 0; i < m.Size(); i++ {
		if _, skip := exclude[i]; skip {
			continue
		}
		score, err := dot(query, m.Vectors.RawRowView(i))
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{Word: m.Vocab.Word(i), Score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Word < matches[j].Word
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
