package mcp

import "github.com/sanonone/lexvek/pkg/core"

// --- Tool Arguments ---

type SimilarWordsArgs struct {
	Word  string `json:"word" jsonschema:"The word to find neighbors for,required"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max number of results (default 10)"`
}

type SimilarWordsResult struct {
	Matches []core.Match `json:"matches"`
}

type WordVectorArgs struct {
	Word string `json:"word" jsonschema:"The word to look up,required"`
}

type WordVectorResult struct {
	Word       string    `json:"word"`
	Vector     []float64 `json:"vector"`
	Dimensions int       `json:"dimensions"`
}

type WordAnalogyArgs struct {
	A     string `json:"a" jsonschema:"First word of the known pair (e.g. 'king'),required"`
	B     string `json:"b" jsonschema:"Second word of the known pair (e.g. 'queen'),required"`
	C     string `json:"c" jsonschema:"The word to complete the analogy for (e.g. 'man'),required"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max number of results (default 10)"`
}

type WordAnalogyResult struct {
	Matches []core.Match `json:"matches"`
}

type WordSimilarityArgs struct {
	Word1 string `json:"word1" jsonschema:"required"`
	Word2 string `json:"word2" jsonschema:"required"`
}

type WordSimilarityResult struct {
	Similarity float64 `json:"similarity"`
}
