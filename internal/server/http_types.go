package server

import "github.com/sanonone/lexvek/pkg/core"

// ModelInfoResponse summarizes the served model.
type ModelInfoResponse struct {
	Words       int      `json:"words"`
	Dimensions  int      `json:"dimensions"`
	WindowSize  int      `json:"window_size,omitempty"`
	MinCount    int      `json:"min_count,omitempty"`
	TotalTokens int      `json:"total_tokens,omitempty"`
	RunID       string   `json:"run_id,omitempty"`
	TopWords    []string `json:"top_words,omitempty"`
}

// WordVectorResponse carries the embedding of a single word.
type WordVectorResponse struct {
	Word   string    `json:"word"`
	Vector []float64 `json:"vector"`
	Count  int       `json:"count,omitempty"`
}

// SimilarRequest defines the body for nearest-word queries.
type SimilarRequest struct {
	Word  string `json:"word"`
	Limit int    `json:"limit,omitempty"`
}

// AnalogyRequest defines the body for "a is to b as c is to ?" queries.
type AnalogyRequest struct {
	A     string `json:"a"`
	B     string `json:"b"`
	C     string `json:"c"`
	Limit int    `json:"limit,omitempty"`
}

// SimilarityRequest defines the body for pairwise similarity queries.
type SimilarityRequest struct {
	Word1 string `json:"word1"`
	Word2 string `json:"word2"`
}

// MatchesResponse carries a ranked list of scored words.
type MatchesResponse struct {
	Matches []core.Match `json:"matches"`
}

// SimilarityResponse carries the cosine similarity of a word pair.
type SimilarityResponse struct {
	Word1      string  `json:"word1"`
	Word2      string  `json:"word2"`
	Similarity float64 `json:"similarity"`
}
