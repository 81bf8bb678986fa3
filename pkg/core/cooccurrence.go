package core

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sanonone/lexvek/pkg/corpus"
	"gonum.org/v1/gonum/mat"
)

// CooccurrenceCounter is the signature shared by the sequential and
// parallel counting implementations.
type CooccurrenceCounter func(c corpus.Corpus, v *Vocabulary, windowSize int) (*mat.Dense, error)

// CooccurrenceMatrix builds the V x V co-occurrence count matrix of the
// corpus under the given vocabulary.
//
// For every token position, each token within windowSize positions on either
// side counts as one co-occurrence. Windows truncate at document boundaries
// and a position never pairs with itself, so the diagonal stays zero unless
// a word genuinely co-occurs with another occurrence of itself. Because
// every position takes a turn as the window center, each unordered pair is
// counted from both sides and the matrix is symmetric by construction.
//
// Tokens absent from the vocabulary (possible when it was built with a min
// count) still occupy their positions but contribute no counts.
//
// Returns ErrInvalidWindow when windowSize < 1.
func CooccurrenceMatrix(c corpus.Corpus, v *Vocabulary, windowSize int) (*mat.Dense, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("window size %d: %w", windowSize, ErrInvalidWindow)
	}

	m := mat.NewDense(v.Size(), v.Size(), nil)
	for _, doc := range c {
		accumulateDocument(m, doc, v, windowSize)
	}
	return m, nil
}

// CooccurrenceMatrixParallel builds the same matrix as CooccurrenceMatrix
// using a worker pool over documents. Counts are small integers held in
// float64, so the partial sums are exact and the result is identical to the
// sequential build regardless of scheduling.
//
// Each worker holds its own V x V accumulator, so peak memory grows with the
// number of CPUs.
func CooccurrenceMatrixParallel(c corpus.Corpus, v *Vocabulary, windowSize int) (*mat.Dense, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("window size %d: %w", windowSize, ErrInvalidWindow)
	}

	numWorkers := runtime.NumCPU()
	if len(c) < numWorkers {
		numWorkers = len(c)
	}
	if numWorkers <= 1 {
		return CooccurrenceMatrix(c, v, windowSize)
	}

	jobs := make(chan corpus.Document, len(c))
	partials := make(chan *mat.Dense, numWorkers)
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := mat.NewDense(v.Size(), v.Size(), nil)
			for doc := range jobs {
				accumulateDocument(local, doc, v, windowSize)
			}
			partials <- local
		}()
	}

	for _, doc := range c {
		jobs <- doc
	}
	close(jobs)

	wg.Wait()
	close(partials)

	m := mat.NewDense(v.Size(), v.Size(), nil)
	for partial := range partials {
		m.Add(m, partial)
	}
	return m, nil
}

// accumulateDocument adds the co-occurrence counts of a single document to m.
func accumulateDocument(m *mat.Dense, doc corpus.Document, v *Vocabulary, windowSize int) {
	// Resolve tokens to indices once; -1 marks out-of-vocabulary tokens.
	ids := make([]int, len(doc))
	for i, token := range doc {
		if idx, ok := v.Index(token); ok {
			ids[i] = idx
		} else {
			ids[i] = -1
		}
	}

	for i, center := range ids {
		if center < 0 {
			continue
		}
		start := i - windowSize
		if start < 0 {
			start = 0
		}
		end := i + windowSize
		if end > len(ids)-1 {
			end = len(ids) - 1
		}
		for j := start; j <= end; j++ {
			if j == i {
				continue
			}
			context := ids[j]
			if context < 0 {
				continue
			}
			m.Set(center, context, m.At(center, context)+1)
		}
	}
}
